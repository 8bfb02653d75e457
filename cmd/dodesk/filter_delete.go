package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var filterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}
		id := args[0]

		store := newFilterStore(ws)
		if err := store.Remove(context.Background(), id); err != nil {
			return fmt.Errorf("deleting filter %s: %w", id, err)
		}

		fmt.Printf("Deleted %s\n", id)
		return nil
	},
}
