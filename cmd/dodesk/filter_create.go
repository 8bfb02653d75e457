package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/views"
	"github.com/spf13/cobra"
)

var filterCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a saved filter from the given criteria",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}
		name := args[0]

		state, _ := cmd.Flags().GetString("state")
		priority, _ := cmd.Flags().GetString("priority")
		assignee, _ := cmd.Flags().GetString("assignee")
		sortBy, _ := cmd.Flags().GetString("sort")
		makeDefault, _ := cmd.Flags().GetBool("default")

		cfg := model.FilterConfig{
			State:    state,
			Priority: priority,
			Assignee: assignee,
			Sort:     model.SortOption(sortBy),
		}.Normalized()

		store := newFilterStore(ws)
		f, err := store.Create(context.Background(), name, cfg, makeDefault)
		if errors.Is(err, views.ErrDefaultNotSet) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		} else if err != nil {
			return fmt.Errorf("creating filter: %w", err)
		}

		if jsonOutput {
			printJSON(f)
		} else {
			printFilterTable(f)
		}
		return nil
	},
}

func init() {
	filterCreateCmd.Flags().StringP("state", "s", "", "state filter (default: All)")
	filterCreateCmd.Flags().StringP("priority", "p", "", "priority filter, 0-4 (default: All)")
	filterCreateCmd.Flags().String("assignee", "", "assignee filter (default: All)")
	filterCreateCmd.Flags().String("sort", "", "sort option token (default: None)")
	filterCreateCmd.Flags().Bool("default", false, "mark as the default filter")
}
