package main

import (
	"context"
	"fmt"

	"github.com/shilendra-dev/dodesk/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List issues",
	GroupID: "issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}

		states, _ := cmd.Flags().GetStringSlice("state")
		assignee, _ := cmd.Flags().GetString("assignee")
		search, _ := cmd.Flags().GetString("search")
		sortBy, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListIssuesRequest{
			States:   states,
			Assignee: assignee,
			Search:   search,
			Sort:     sortBy,
			Limit:    limit,
			Offset:   offset,
		}
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetInt("priority")
			req.Priority = &p
		}

		resp, err := deskClient.ListIssues(context.Background(), ws, req)
		if err != nil {
			return fmt.Errorf("listing issues: %w", err)
		}

		if jsonOutput {
			printJSON(resp.Issues)
		} else {
			printIssueListTable(resp.Issues, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceP("state", "s", nil, "filter by state (repeatable)")
	listCmd.Flags().IntP("priority", "p", 0, "filter by priority")
	listCmd.Flags().String("assignee", "", "filter by assignee member id")
	listCmd.Flags().String("search", "", "substring match on title/description")
	listCmd.Flags().String("sort", "", "sort key (e.g. -priority, created_at)")
	listCmd.Flags().Int("limit", 20, "maximum number of issues to return")
	listCmd.Flags().Int("offset", 0, "offset for pagination")
}
