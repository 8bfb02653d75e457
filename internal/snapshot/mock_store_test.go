package snapshot

import (
	"context"
	"sort"

	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/store"
)

// mockStore is a minimal in-memory store for snapshot tests.
type mockStore struct {
	issues  map[string]*model.Issue
	filters map[string]*model.SavedFilter
}

func newMockStore() *mockStore {
	return &mockStore{
		issues:  make(map[string]*model.Issue),
		filters: make(map[string]*model.SavedFilter),
	}
}

func (m *mockStore) CreateIssue(_ context.Context, issue *model.Issue) error {
	m.issues[issue.ID] = issue
	return nil
}

func (m *mockStore) GetIssue(_ context.Context, id string) (*model.Issue, error) {
	return m.issues[id], nil
}

func (m *mockStore) ListIssues(_ context.Context, workspaceID string, _ model.IssueFilter) ([]*model.Issue, int, error) {
	var result []*model.Issue
	for _, iss := range m.issues {
		if workspaceID != "" && iss.WorkspaceID != workspaceID {
			continue
		}
		result = append(result, iss)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, len(result), nil
}

func (m *mockStore) UpdateIssue(_ context.Context, issue *model.Issue) error {
	m.issues[issue.ID] = issue
	return nil
}

func (m *mockStore) DeleteIssue(_ context.Context, id string) error {
	delete(m.issues, id)
	return nil
}

func (m *mockStore) CreateSavedFilter(_ context.Context, f *model.SavedFilter) error {
	m.filters[f.ID] = f
	return nil
}

func (m *mockStore) GetSavedFilter(_ context.Context, id string) (*model.SavedFilter, error) {
	return m.filters[id], nil
}

func (m *mockStore) ListSavedFilters(_ context.Context, workspaceID, userID string) ([]*model.SavedFilter, error) {
	var result []*model.SavedFilter
	for _, f := range m.filters {
		if workspaceID != "" && f.WorkspaceID != workspaceID {
			continue
		}
		if userID != "" && f.UserID != userID {
			continue
		}
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) GetDefaultSavedFilter(_ context.Context, workspaceID, userID string) (*model.SavedFilter, error) {
	for _, f := range m.filters {
		if f.WorkspaceID == workspaceID && f.UserID == userID && f.IsDefault {
			return f, nil
		}
	}
	return nil, nil
}

func (m *mockStore) SetDefaultSavedFilter(_ context.Context, workspaceID, userID, filterID string) (*model.SavedFilter, error) {
	for _, f := range m.filters {
		if f.WorkspaceID == workspaceID && f.UserID == userID {
			f.IsDefault = f.ID == filterID
		}
	}
	return m.filters[filterID], nil
}

func (m *mockStore) DeleteSavedFilter(_ context.Context, id string) error {
	delete(m.filters, id)
	return nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error {
	return nil
}
