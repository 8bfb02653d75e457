package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var filterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the workspace's saved filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}

		store := newFilterStore(ws)
		filters, err := store.List(context.Background())
		if err != nil {
			return fmt.Errorf("listing filters: %w", err)
		}

		if jsonOutput {
			printJSON(filters)
			return nil
		}
		if len(filters) == 0 {
			fmt.Println("no saved filters")
			return nil
		}
		printFilterListTable(filters)
		return nil
	},
}
