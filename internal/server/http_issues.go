package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shilendra-dev/dodesk/internal/events"
	"github.com/shilendra-dev/dodesk/internal/idgen"
	"github.com/shilendra-dev/dodesk/internal/model"
)

type createIssueInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	Priority    int        `json:"priority"`
	Assignee    string     `json:"assignee"`
	DueAt       *time.Time `json:"due_at"`
	CreatedBy   string     `json:"created_by"`
}

type updateIssueInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	State       *string    `json:"state"`
	Priority    *int       `json:"priority"`
	Assignee    *string    `json:"assignee"`
	DueAt       *time.Time `json:"due_at"`
}

// handleCreateIssue handles POST /v1/workspaces/{ws}/issues.
func (s *DeskServer) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")

	var in createIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.CreatedBy == "" {
		in.CreatedBy = userID(r)
	}

	issue, err := s.createIssue(r.Context(), workspaceID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"issue": issue})
}

func (s *DeskServer) createIssue(ctx context.Context, workspaceID string, in createIssueInput) (*model.Issue, error) {
	id, err := idgen.Issue()
	if err != nil {
		return nil, err
	}

	state := model.IssueState(in.State)
	if in.State == "" {
		state = model.StateBacklog
	}

	now := time.Now().UTC()
	issue := &model.Issue{
		ID:          id,
		WorkspaceID: workspaceID,
		Title:       in.Title,
		Description: in.Description,
		State:       state,
		Priority:    in.Priority,
		Assignee:    model.AssigneeRef(in.Assignee),
		DueAt:       in.DueAt,
		CreatedAt:   now,
		CreatedBy:   in.CreatedBy,
		UpdatedAt:   now,
	}

	if err := model.ValidateIssue(issue); err != nil {
		return nil, inputError(err.Error())
	}

	if err := s.store.CreateIssue(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicIssueCreated, events.IssueCreated{Issue: issue})
	return issue, nil
}

// handleListIssues handles GET /v1/workspaces/{ws}/issues.
func (s *DeskServer) handleListIssues(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("ws")

	q := r.URL.Query()
	filter := model.IssueFilter{
		Assignee: q.Get("assignee"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}

	if v := q.Get("state"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.States = append(filter.States, model.IssueState(st))
		}
	}
	if v := q.Get("priority"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Priority = &n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	issues, total, err := s.store.ListIssues(r.Context(), workspaceID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list issues")
		return
	}

	// Ensure issues is never null in JSON output.
	if issues == nil {
		issues = []*model.Issue{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"issues": issues,
		"total":  total,
	})
}

// handleGetIssue handles GET /v1/issues/{id}.
func (s *DeskServer) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	issue, err := s.store.GetIssue(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}
	if issue == nil {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"issue": issue})
}

// handleUpdateIssue handles PATCH /v1/issues/{id}. Absent fields keep their
// current value.
func (s *DeskServer) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in updateIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := s.store.GetIssue(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}
	if issue == nil {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}

	changes := make(map[string]any)
	if in.Title != nil {
		issue.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		issue.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.State != nil {
		issue.State = model.IssueState(*in.State)
		changes["state"] = *in.State
	}
	if in.Priority != nil {
		issue.Priority = *in.Priority
		changes["priority"] = *in.Priority
	}
	if in.Assignee != nil {
		issue.Assignee = model.AssigneeRef(*in.Assignee)
		changes["assignee"] = *in.Assignee
	}
	if in.DueAt != nil {
		issue.DueAt = in.DueAt
		changes["due_at"] = *in.DueAt
	}

	if len(changes) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"issue": issue})
		return
	}

	if err := model.ValidateIssue(issue); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	issue.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateIssue(r.Context(), issue); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update issue")
		return
	}

	s.publish(r.Context(), events.TopicIssueUpdated, events.IssueUpdated{Issue: issue, Changes: changes})

	writeJSON(w, http.StatusOK, map[string]any{"issue": issue})
}

// handleDeleteIssue handles DELETE /v1/issues/{id}.
func (s *DeskServer) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	issue, err := s.store.GetIssue(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}
	if issue == nil {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}

	if err := s.store.DeleteIssue(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete issue")
		return
	}

	s.publish(r.Context(), events.TopicIssueDeleted, events.IssueDeleted{
		IssueID:     id,
		WorkspaceID: issue.WorkspaceID,
	})

	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps server errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var ie inputError
	if errors.As(err, &ie) {
		writeError(w, http.StatusBadRequest, ie.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
