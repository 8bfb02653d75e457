// Package client provides a transport-agnostic interface for the dodesk service
// and an HTTP/JSON implementation that talks to the dodesk REST API.
package client

import (
	"context"
	"time"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// DeskClient is the interface that all dodesk CLI commands use to communicate
// with the desk server. It is implemented by HTTPClient (default) and can be
// backed by any transport.
type DeskClient interface {
	// Issue CRUD
	CreateIssue(ctx context.Context, workspaceID string, req *CreateIssueRequest) (*model.Issue, error)
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	ListIssues(ctx context.Context, workspaceID string, req *ListIssuesRequest) (*ListIssuesResponse, error)
	UpdateIssue(ctx context.Context, id string, req *UpdateIssueRequest) (*model.Issue, error)
	DeleteIssue(ctx context.Context, id string) error

	// Saved filters
	ListSavedFilters(ctx context.Context, workspaceID string) ([]*model.SavedFilter, error)
	GetDefaultSavedFilter(ctx context.Context, workspaceID string) (*model.SavedFilter, error)
	CreateSavedFilter(ctx context.Context, workspaceID, name string, cfg model.FilterConfig, isDefault bool) (*model.SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, workspaceID, filterID string) error
	SetDefaultSavedFilter(ctx context.Context, workspaceID, filterID string) (*model.SavedFilter, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateIssueRequest holds parameters for creating an issue.
type CreateIssueRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	State       string     `json:"state,omitempty"`
	Priority    int        `json:"priority"`
	Assignee    string     `json:"assignee,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// ListIssuesRequest holds parameters for listing issues.
type ListIssuesRequest struct {
	States   []string `json:"states,omitempty"`
	Priority *int     `json:"priority,omitempty"`
	Assignee string   `json:"assignee,omitempty"`
	Search   string   `json:"search,omitempty"`
	Sort     string   `json:"sort,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// ListIssuesResponse is the response from ListIssues.
type ListIssuesResponse struct {
	Issues []*model.Issue `json:"issues"`
	Total  int            `json:"total"`
}

// UpdateIssueRequest holds optional parameters for updating an issue.
// Nil pointer fields mean "don't change".
type UpdateIssueRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	State       *string    `json:"state,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	Assignee    *string    `json:"assignee,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// CreateSavedFilterRequest is the wire body for creating a saved filter.
type CreateSavedFilterRequest struct {
	Name      string             `json:"name"`
	Config    model.FilterConfig `json:"filter_config"`
	IsDefault bool               `json:"isDefault,omitempty"`
}
