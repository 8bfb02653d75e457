package main

import (
	"github.com/shilendra-dev/dodesk/internal/views"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:     "filter",
	Short:   "Manage saved filters",
	GroupID: "views",
}

// newFilterStore builds a saved-filter cache on top of the active client.
// DeskClient carries the full saved-filter surface, so it satisfies the
// store's backend interface directly.
func newFilterStore(workspaceID string) *views.SavedFilterStore {
	return views.NewSavedFilterStore(deskClient, workspaceID, nil)
}

func init() {
	filterCmd.AddCommand(filterListCmd)
	filterCmd.AddCommand(filterCreateCmd)
	filterCmd.AddCommand(filterDeleteCmd)
	filterCmd.AddCommand(filterDefaultCmd)
}
