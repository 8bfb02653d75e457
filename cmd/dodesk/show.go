package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show details of an issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		iss, err := deskClient.GetIssue(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting issue %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(iss)
		} else {
			printIssueTable(iss)
		}
		return nil
	},
}
