package store

import (
	"context"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// Store defines the persistence interface for issues and saved filters.
// Lookup methods return (nil, nil) when the record does not exist.
type Store interface {
	// Issue CRUD
	CreateIssue(ctx context.Context, issue *model.Issue) error
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	// ListIssues returns the workspace's issues matching the filter plus the
	// total count before limit/offset. An empty workspaceID means all
	// workspaces (used by snapshot export).
	ListIssues(ctx context.Context, workspaceID string, filter model.IssueFilter) ([]*model.Issue, int, error)
	UpdateIssue(ctx context.Context, issue *model.Issue) error
	DeleteIssue(ctx context.Context, id string) error

	// Saved filters
	CreateSavedFilter(ctx context.Context, f *model.SavedFilter) error
	GetSavedFilter(ctx context.Context, id string) (*model.SavedFilter, error)
	// ListSavedFilters scopes to (workspace, user); empty workspaceID means
	// all workspaces (snapshot export).
	ListSavedFilters(ctx context.Context, workspaceID, userID string) ([]*model.SavedFilter, error)
	GetDefaultSavedFilter(ctx context.Context, workspaceID, userID string) (*model.SavedFilter, error)
	// SetDefaultSavedFilter atomically unsets the previous default for the
	// (workspace, user) pair and marks the given filter default, returning
	// the updated record.
	SetDefaultSavedFilter(ctx context.Context, workspaceID, userID, filterID string) (*model.SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, id string) error

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
