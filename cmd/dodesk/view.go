package main

import (
	"context"
	"fmt"

	"github.com/shilendra-dev/dodesk/internal/client"
	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/views"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:     "view [<name-or-id>]",
	Short:   "Show issues through a saved view (defaults to the default view)",
	GroupID: "views",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}
		ctx := context.Background()

		store := newFilterStore(ws)
		controller := views.NewController(store, nil)
		store.AttachController(controller)

		filters, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("loading saved filters: %w", err)
		}

		if len(args) == 1 {
			id, err := resolveFilter(filters, args[0])
			if err != nil {
				return err
			}
			controller.SelectView(id)
		} else {
			controller.ApplyDefault(store.Default(ctx))
		}

		// Command-line overrides act as manual edits on top of the view.
		if cmd.Flags().Changed("state") {
			v, _ := cmd.Flags().GetString("state")
			controller.SetStateFilter(v)
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			controller.SetPriorityFilter(v)
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetString("assignee")
			controller.SetAssigneeFilter(v)
		}
		if cmd.Flags().Changed("sort") {
			v, _ := cmd.Flags().GetString("sort")
			controller.SetSortOption(model.SortOption(v))
		}

		limit, _ := cmd.Flags().GetInt("limit")
		resp, err := deskClient.ListIssues(ctx, ws, &client.ListIssuesRequest{Limit: limit})
		if err != nil {
			return fmt.Errorf("listing issues: %w", err)
		}

		visible := controller.Visible(resp.Issues)

		if jsonOutput {
			printJSON(visible)
			return nil
		}
		if sel := controller.SelectedViewID(); sel != model.SelectedNone {
			fmt.Printf("View: %s\n\n", sel)
		}
		printIssueListTable(visible, len(visible))
		return nil
	},
}

// resolveFilter matches the argument against filter ids first, then names.
// The "none" sentinel passes through so `dodesk view none` shows the
// unfiltered list.
func resolveFilter(filters []*model.SavedFilter, arg string) (string, error) {
	if arg == model.SelectedNone {
		return arg, nil
	}
	for _, f := range filters {
		if f.ID == arg {
			return f.ID, nil
		}
	}
	for _, f := range filters {
		if f.Name == arg {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("no saved filter named %q", arg)
}

func init() {
	viewCmd.Flags().StringP("state", "s", "", "override the view's state filter")
	viewCmd.Flags().StringP("priority", "p", "", "override the view's priority filter")
	viewCmd.Flags().String("assignee", "", "override the view's assignee filter")
	viewCmd.Flags().String("sort", "", "override the view's sort option")
	viewCmd.Flags().Int("limit", 200, "maximum number of issues to fetch")
}
