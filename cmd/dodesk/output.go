package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printIssueTable(iss *model.Issue) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(iss.ID))
	fmt.Printf("Title:       %s\n", iss.Title)
	fmt.Printf("State:       %s\n", ui.RenderState(iss.State))
	fmt.Printf("Priority:    %s\n", ui.RenderPriority(iss.Priority))
	fmt.Printf("Assignee:    %s\n", iss.Assignee)
	if iss.Description != "" {
		fmt.Printf("Description: %s\n", iss.Description)
	}
	if iss.DueAt != nil {
		fmt.Printf("Due At:      %s\n", iss.DueAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Created By:  %s\n", iss.CreatedBy)
	if !iss.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", iss.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !iss.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:  %s\n", iss.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printIssueListTable(issues []*model.Issue, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATE\tPRIORITY\tTITLE\tASSIGNEE")
	for _, iss := range issues {
		title := iss.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			iss.ID,
			ui.RenderState(iss.State),
			ui.RenderPriority(iss.Priority),
			title,
			iss.Assignee,
		)
	}
	w.Flush()
	fmt.Println()
	fmt.Println(ui.RenderMuted(fmt.Sprintf("%d issues (%d total)", len(issues), total)))
}

func printFilterTable(f *model.SavedFilter) {
	fmt.Printf("ID:        %s\n", ui.RenderAccent(f.ID))
	fmt.Printf("Name:      %s\n", f.Name)
	fmt.Printf("State:     %s\n", f.Config.State)
	fmt.Printf("Priority:  %s\n", f.Config.Priority)
	fmt.Printf("Assignee:  %s\n", f.Config.Assignee)
	fmt.Printf("Sort:      %s\n", f.Config.Sort)
	fmt.Printf("Default:   %t\n", f.IsDefault)
	if !f.CreatedAt.IsZero() {
		fmt.Printf("Created:   %s\n", f.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printFilterListTable(filters []*model.SavedFilter) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tSTATE\tPRIORITY\tASSIGNEE\tSORT")
	for _, f := range filters {
		marker := "  "
		if f.IsDefault {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, f.ID, f.Name,
			f.Config.State, f.Config.Priority, f.Config.Assignee, f.Config.Sort,
		)
	}
	w.Flush()
	fmt.Println()
	fmt.Println(ui.RenderMuted(fmt.Sprintf("%d filters (* = default)", len(filters))))
}
