package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shilendra-dev/dodesk/internal/client"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update an issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdateIssueRequest{}

		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("state") {
			v, _ := cmd.Flags().GetString("state")
			req.State = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetInt("priority")
			req.Priority = &v
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetString("assignee")
			req.Assignee = &v
		}
		if cmd.Flags().Changed("due") {
			v, _ := cmd.Flags().GetString("due")
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fmt.Errorf("parsing --due (expected YYYY-MM-DD): %w", err)
			}
			req.DueAt = &t
		}

		iss, err := deskClient.UpdateIssue(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("updating issue %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(iss)
		} else {
			printIssueTable(iss)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().String("title", "", "issue title")
	updateCmd.Flags().StringP("description", "d", "", "issue description")
	updateCmd.Flags().StringP("state", "s", "", "issue state")
	updateCmd.Flags().IntP("priority", "p", 0, "issue priority")
	updateCmd.Flags().String("assignee", "", "assignee member id")
	updateCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
}
