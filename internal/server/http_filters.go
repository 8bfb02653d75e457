package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shilendra-dev/dodesk/internal/events"
	"github.com/shilendra-dev/dodesk/internal/idgen"
	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/store"
)

type createSavedFilterInput struct {
	Name      string             `json:"name"`
	Config    model.FilterConfig `json:"filter_config"`
	IsDefault bool               `json:"isDefault"`
}

// requireUser extracts the acting user or writes a 400 and returns "".
// Saved filters are scoped per user, so the identity header is mandatory here.
func requireUser(w http.ResponseWriter, r *http.Request) string {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-Id header is required")
	}
	return uid
}

// handleListSavedFilters handles GET /v1/saved-filters/{ws}.
func (s *DeskServer) handleListSavedFilters(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")
	uid := requireUser(w, r)
	if uid == "" {
		return
	}

	filters, err := s.store.ListSavedFilters(r.Context(), workspaceID, uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list saved filters")
		return
	}

	// Ensure filters is never null in JSON output.
	if filters == nil {
		filters = []*model.SavedFilter{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"filters": filters})
}

// handleGetDefaultSavedFilter handles GET /v1/saved-filters/{ws}/default.
// Responds with {"filter": null} when the user has no default in the workspace.
func (s *DeskServer) handleGetDefaultSavedFilter(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")
	uid := requireUser(w, r)
	if uid == "" {
		return
	}

	f, err := s.store.GetDefaultSavedFilter(r.Context(), workspaceID, uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get default saved filter")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"filter": f})
}

// handleCreateSavedFilter handles POST /v1/saved-filters/{ws}.
// When isDefault is set, the create and the default flip happen in one
// transaction so the single-default invariant holds at every point.
func (s *DeskServer) handleCreateSavedFilter(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")
	uid := requireUser(w, r)
	if uid == "" {
		return
	}

	var in createSavedFilterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := idgen.Filter()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	now := time.Now().UTC()
	f := &model.SavedFilter{
		ID:          id,
		WorkspaceID: workspaceID,
		UserID:      uid,
		Name:        in.Name,
		Config:      in.Config.Normalized(),
		IsDefault:   in.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := model.ValidateSavedFilter(f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if in.IsDefault {
		err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
			f.IsDefault = false
			if err := tx.CreateSavedFilter(ctx, f); err != nil {
				return err
			}
			updated, err := tx.SetDefaultSavedFilter(ctx, workspaceID, uid, f.ID)
			if err != nil {
				return err
			}
			f = updated
			return nil
		})
	} else {
		err = s.store.CreateSavedFilter(ctx, f)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create saved filter")
		return
	}

	s.publish(ctx, events.TopicFilterCreated, events.FilterCreated{Filter: f})
	if f.IsDefault {
		s.publish(ctx, events.TopicFilterDefaultSet, events.FilterDefaultSet{Filter: f})
	}

	writeJSON(w, http.StatusCreated, map[string]any{"filter": f})
}

// handleDeleteSavedFilter handles DELETE /v1/saved-filters/{ws}/{id}.
func (s *DeskServer) handleDeleteSavedFilter(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")
	id := r.PathValue("id")
	uid := requireUser(w, r)
	if uid == "" {
		return
	}

	f, err := s.store.GetSavedFilter(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get saved filter")
		return
	}
	if f == nil || f.WorkspaceID != workspaceID || f.UserID != uid {
		writeError(w, http.StatusNotFound, "saved filter not found")
		return
	}

	if err := s.store.DeleteSavedFilter(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete saved filter")
		return
	}

	s.publish(r.Context(), events.TopicFilterDeleted, events.FilterDeleted{
		FilterID:    id,
		WorkspaceID: workspaceID,
		WasDefault:  f.IsDefault,
	})

	writeJSON(w, http.StatusOK, map[string]any{})
}

// handleSetDefaultSavedFilter handles PUT /v1/saved-filters/{ws}/{id}/default.
func (s *DeskServer) handleSetDefaultSavedFilter(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")
	id := r.PathValue("id")
	uid := requireUser(w, r)
	if uid == "" {
		return
	}

	f, err := s.store.GetSavedFilter(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get saved filter")
		return
	}
	if f == nil || f.WorkspaceID != workspaceID || f.UserID != uid {
		writeError(w, http.StatusNotFound, "saved filter not found")
		return
	}

	// Capture the outgoing default for the event payload; best effort.
	var previousID string
	if prev, err := s.store.GetDefaultSavedFilter(r.Context(), workspaceID, uid); err == nil && prev != nil {
		previousID = prev.ID
	}

	updated, err := s.store.SetDefaultSavedFilter(r.Context(), workspaceID, uid, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to set default saved filter")
		return
	}

	s.publish(r.Context(), events.TopicFilterDefaultSet, events.FilterDefaultSet{
		Filter:     updated,
		PreviousID: previousID,
	})

	writeJSON(w, http.StatusOK, map[string]any{"filter": updated})
}
