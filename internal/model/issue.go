package model

import "time"

// IssueState represents the workflow state of an issue.
type IssueState string

const (
	StateBacklog    IssueState = "backlog"
	StateTodo       IssueState = "todo"
	StateInProgress IssueState = "in_progress"
	StateDone       IssueState = "done"
	StateCanceled   IssueState = "canceled"
)

// String returns the string representation of the state.
func (s IssueState) String() string {
	return string(s)
}

// IsValid checks whether the state is a known value.
func (s IssueState) IsValid() bool {
	switch s {
	case StateBacklog, StateTodo, StateInProgress, StateDone, StateCanceled:
		return true
	}
	return false
}

// Priority levels. Issues carry priority as an integer from 0 (none)
// to 4 (urgent); larger means more urgent.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

// ValidPriority reports whether p is within the supported range.
func ValidPriority(p int) bool {
	return p >= PriorityNone && p <= PriorityUrgent
}

// AssigneeRef identifies the workspace member an issue is assigned to.
// Matching is always by member id, never by display name.
type AssigneeRef string

// Equal reports whether two references identify the same member.
func (a AssigneeRef) Equal(other AssigneeRef) bool {
	return a == other
}

// IsZero reports whether the reference is unset (unassigned).
func (a AssigneeRef) IsZero() bool {
	return a == ""
}

// Issue is the core work-item record.
type Issue struct {
	ID          string      `json:"id"`
	WorkspaceID string      `json:"workspace_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	State       IssueState  `json:"state"`
	Priority    int         `json:"priority"`
	Assignee    AssigneeRef `json:"assignee,omitempty"`
	DueAt       *time.Time  `json:"due_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	CreatedBy   string      `json:"created_by,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
