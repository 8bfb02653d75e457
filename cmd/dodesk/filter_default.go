package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var filterDefaultCmd = &cobra.Command{
	Use:   "default [<id>]",
	Short: "Show or set the default saved filter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}

		store := newFilterStore(ws)

		// No argument: show the current default.
		if len(args) == 0 {
			f := store.Default(context.Background())
			if f == nil {
				fmt.Println("no default filter set")
				return nil
			}
			if jsonOutput {
				printJSON(f)
			} else {
				printFilterTable(f)
			}
			return nil
		}

		f, err := store.SetDefault(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("setting default filter: %w", err)
		}

		if jsonOutput {
			printJSON(f)
		} else {
			printFilterTable(f)
		}
		return nil
	},
}
