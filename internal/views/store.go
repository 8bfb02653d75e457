package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// ErrDefaultNotSet is returned by Create when the filter was persisted but
// the follow-up default-setting call failed. The filter exists and is
// selectable; callers must tell the user it is not the default.
var ErrDefaultNotSet = errors.New("filter saved but could not be set as default")

// ErrInFlight is returned when an operation with the same key is already
// running. Distinct operations (say, a create and an unrelated delete) are
// never serialized against each other.
var ErrInFlight = errors.New("operation already in flight")

// FilterAPI is the backend surface the store delegates persistence to.
// client.HTTPClient implements it.
type FilterAPI interface {
	ListSavedFilters(ctx context.Context, workspaceID string) ([]*model.SavedFilter, error)
	GetDefaultSavedFilter(ctx context.Context, workspaceID string) (*model.SavedFilter, error)
	CreateSavedFilter(ctx context.Context, workspaceID, name string, cfg model.FilterConfig, isDefault bool) (*model.SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, workspaceID, filterID string) error
	SetDefaultSavedFilter(ctx context.Context, workspaceID, filterID string) (*model.SavedFilter, error)
}

// viewResetter is the slice of the controller the store needs when the
// cached default disappears out from under it.
type viewResetter interface {
	ClearAll()
}

// SavedFilterStore caches one workspace's saved filters on top of the
// backend API. Read failures keep the previous cache (stale beats empty);
// mutation failures surface to the caller.
type SavedFilterStore struct {
	api         FilterAPI
	workspaceID string
	logger      *slog.Logger

	filters   []*model.SavedFilter
	byID      map[string]*model.SavedFilter
	defaultID string

	inflight map[string]bool

	controller viewResetter
}

// NewSavedFilterStore returns an empty store for the given workspace.
// A nil logger falls back to slog.Default.
func NewSavedFilterStore(api FilterAPI, workspaceID string, logger *slog.Logger) *SavedFilterStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SavedFilterStore{
		api:         api,
		workspaceID: workspaceID,
		logger:      logger,
		byID:        make(map[string]*model.SavedFilter),
		inflight:    make(map[string]bool),
	}
}

// AttachController registers the view controller to reset when the cached
// default filter is removed.
func (s *SavedFilterStore) AttachController(c viewResetter) {
	s.controller = c
}

// begin marks an operation key as in flight. Same-key re-entrancy is a
// caller bug worth rejecting: a second concurrent setDefault, for example,
// could interleave with the first and leave the cache lying about which
// filter is default.
func (s *SavedFilterStore) begin(key string) error {
	if s.inflight[key] {
		return fmt.Errorf("%s: %w", key, ErrInFlight)
	}
	s.inflight[key] = true
	return nil
}

func (s *SavedFilterStore) end(key string) {
	delete(s.inflight, key)
}

// List fetches and caches all saved filters for the workspace. On failure
// the previous cache is left untouched and the error is returned.
func (s *SavedFilterStore) List(ctx context.Context) ([]*model.SavedFilter, error) {
	const key = "listFilters"
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.end(key)

	filters, err := s.api.ListSavedFilters(ctx, s.workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list saved filters: %w", err)
	}
	s.replaceCache(filters)
	return s.snapshotFilters(), nil
}

// Default fetches the workspace's default filter. Failures degrade to nil
// so that applying the default on load falls back to a neutral view instead
// of blocking it.
func (s *SavedFilterStore) Default(ctx context.Context) *model.SavedFilter {
	const key = "fetchDefault"
	if err := s.begin(key); err != nil {
		return nil
	}
	defer s.end(key)

	f, err := s.api.GetDefaultSavedFilter(ctx, s.workspaceID)
	if err != nil {
		s.logger.Warn("default filter fetch failed, using neutral view",
			"workspace_id", s.workspaceID, "error", err)
		return nil
	}
	if f == nil {
		s.defaultID = ""
		return nil
	}
	s.upsert(f)
	s.markDefault(f.ID)
	return f
}

// Create persists a new saved filter. When makeDefault is set, a second
// call marks it default; the two calls are not atomic. If the second call
// fails, the created filter is returned together with ErrDefaultNotSet.
func (s *SavedFilterStore) Create(ctx context.Context, name string, cfg model.FilterConfig, makeDefault bool) (*model.SavedFilter, error) {
	const key = "createFilter"
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.end(key)

	f, err := s.api.CreateSavedFilter(ctx, s.workspaceID, name, cfg.Normalized(), false)
	if err != nil {
		return nil, fmt.Errorf("create saved filter: %w", err)
	}
	s.upsert(f)

	if !makeDefault {
		return f, nil
	}

	updated, err := s.api.SetDefaultSavedFilter(ctx, s.workspaceID, f.ID)
	if err != nil {
		s.logger.Warn("filter created but default flag not set",
			"filter_id", f.ID, "error", err)
		return f, ErrDefaultNotSet
	}
	s.upsert(updated)
	s.markDefault(updated.ID)
	return updated, nil
}

// Remove deletes a saved filter. If the removed filter was the cached
// default, the local default pointer is cleared and the attached controller
// is reset to the "none" sentinel; the server has no dangling default to
// report, so this is the client's own consistency obligation.
func (s *SavedFilterStore) Remove(ctx context.Context, filterID string) error {
	key := "deleteFilter-" + filterID
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if err := s.api.DeleteSavedFilter(ctx, s.workspaceID, filterID); err != nil {
		return fmt.Errorf("delete saved filter: %w", err)
	}

	s.drop(filterID)
	if s.defaultID == filterID {
		s.defaultID = ""
		if s.controller != nil {
			s.controller.ClearAll()
		}
	}
	return nil
}

// SetDefault marks the given filter as the workspace default. On success
// the cache trusts that the server unset any previous default.
func (s *SavedFilterStore) SetDefault(ctx context.Context, filterID string) (*model.SavedFilter, error) {
	const key = "setDefault"
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.end(key)

	f, err := s.api.SetDefaultSavedFilter(ctx, s.workspaceID, filterID)
	if err != nil {
		return nil, fmt.Errorf("set default filter: %w", err)
	}
	s.upsert(f)
	s.markDefault(f.ID)
	return f, nil
}

// Cached returns the cached filter list without touching the network.
func (s *SavedFilterStore) Cached() []*model.SavedFilter {
	return s.snapshotFilters()
}

// snapshotFilters copies the cached slice so appends on the returned value
// cannot reach into the cache.
func (s *SavedFilterStore) snapshotFilters() []*model.SavedFilter {
	out := make([]*model.SavedFilter, len(s.filters))
	copy(out, s.filters)
	return out
}

// FilterByID looks a filter up in the cache. Implements ViewSource.
func (s *SavedFilterStore) FilterByID(id string) (*model.SavedFilter, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// FilterByName looks a filter up in the cache by exact name.
func (s *SavedFilterStore) FilterByName(name string) (*model.SavedFilter, bool) {
	for _, f := range s.filters {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// DefaultID returns the cached default filter id, or "" when none.
func (s *SavedFilterStore) DefaultID() string {
	return s.defaultID
}

func (s *SavedFilterStore) replaceCache(filters []*model.SavedFilter) {
	s.filters = filters
	s.byID = make(map[string]*model.SavedFilter, len(filters))
	s.defaultID = ""
	for _, f := range filters {
		s.byID[f.ID] = f
		if f.IsDefault {
			s.defaultID = f.ID
		}
	}
}

func (s *SavedFilterStore) upsert(f *model.SavedFilter) {
	if _, ok := s.byID[f.ID]; ok {
		for i, cur := range s.filters {
			if cur.ID == f.ID {
				s.filters[i] = f
				break
			}
		}
	} else {
		s.filters = append(s.filters, f)
	}
	s.byID[f.ID] = f
}

func (s *SavedFilterStore) drop(id string) {
	delete(s.byID, id)
	for i, f := range s.filters {
		if f.ID == id {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			break
		}
	}
}

// markDefault records id as the default and flips the cached IsDefault
// flags to match, assuming (not verifying) the server unset the previous
// default.
func (s *SavedFilterStore) markDefault(id string) {
	s.defaultID = id
	for _, f := range s.filters {
		f.IsDefault = f.ID == id
	}
}
