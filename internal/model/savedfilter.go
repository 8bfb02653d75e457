package model

import "time"

// SelectedNone is the sentinel meaning "no saved view selected".
const SelectedNone = "none"

// SavedFilter is a named, persisted FilterConfig scoped to one workspace
// member. At most one saved filter per (workspace, user) has IsDefault set;
// the store enforces that when flipping the flag.
type SavedFilter struct {
	ID          string       `json:"id"`
	WorkspaceID string       `json:"workspace_id"`
	UserID      string       `json:"user_id,omitempty"`
	Name        string       `json:"name"`
	Config      FilterConfig `json:"filter_config"`
	IsDefault   bool         `json:"is_default"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
