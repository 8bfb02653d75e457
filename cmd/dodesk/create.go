package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shilendra-dev/dodesk/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create <title>",
	Short:   "Create a new issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := requireWorkspace()
		if err != nil {
			return err
		}
		title := args[0]

		description, _ := cmd.Flags().GetString("description")
		state, _ := cmd.Flags().GetString("state")
		priority, _ := cmd.Flags().GetInt("priority")
		assignee, _ := cmd.Flags().GetString("assignee")
		due, _ := cmd.Flags().GetString("due")

		req := &client.CreateIssueRequest{
			Title:       title,
			Description: description,
			State:       state,
			Priority:    priority,
			Assignee:    assignee,
			CreatedBy:   userID,
		}

		if due != "" {
			t, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("parsing --due (expected YYYY-MM-DD): %w", err)
			}
			req.DueAt = &t
		}

		iss, err := deskClient.CreateIssue(context.Background(), ws, req)
		if err != nil {
			return fmt.Errorf("creating issue: %w", err)
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
	createCmd.Flags().StringP("description", "d", "", "issue description")
	createCmd.Flags().StringP("state", "s", "", "initial state (default: backlog)")
	createCmd.Flags().IntP("priority", "p", 0, "priority (0=none .. 4=urgent)")
	createCmd.Flags().String("assignee", "", "assignee member id")
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
}
