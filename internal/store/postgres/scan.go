package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanIssue scans a single row into a model.Issue.
// The row must contain columns in the order defined by issueColumns.
func scanIssue(row scannable) (*model.Issue, error) {
	var is model.Issue
	var (
		description sql.NullString
		assignee    sql.NullString
		dueAt       sql.NullTime
		createdBy   sql.NullString
	)

	err := row.Scan(
		&is.ID,
		&is.WorkspaceID,
		&is.Title,
		&description,
		&is.State,
		&is.Priority,
		&assignee,
		&dueAt,
		&is.CreatedAt,
		&createdBy,
		&is.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	is.Description = description.String
	is.Assignee = model.AssigneeRef(assignee.String)
	is.CreatedBy = createdBy.String
	if dueAt.Valid {
		t := dueAt.Time
		is.DueAt = &t
	}

	return &is, nil
}

// scanIssueWithTotal scans a row prefixed with a COUNT(*) OVER() column.
func scanIssueWithTotal(rows *sql.Rows) (*model.Issue, int, error) {
	var is model.Issue
	var total int
	var (
		description sql.NullString
		assignee    sql.NullString
		dueAt       sql.NullTime
		createdBy   sql.NullString
	)

	err := rows.Scan(
		&total,
		&is.ID,
		&is.WorkspaceID,
		&is.Title,
		&description,
		&is.State,
		&is.Priority,
		&assignee,
		&dueAt,
		&is.CreatedAt,
		&createdBy,
		&is.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	is.Description = description.String
	is.Assignee = model.AssigneeRef(assignee.String)
	is.CreatedBy = createdBy.String
	if dueAt.Valid {
		t := dueAt.Time
		is.DueAt = &t
	}

	return &is, total, nil
}

// scanSavedFilter scans a row into a model.SavedFilter, decoding the JSONB
// config column.
func scanSavedFilter(row scannable) (*model.SavedFilter, error) {
	var f model.SavedFilter
	var config []byte

	err := row.Scan(
		&f.ID,
		&f.WorkspaceID,
		&f.UserID,
		&f.Name,
		&config,
		&f.IsDefault,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(config) > 0 {
		if err := json.Unmarshal(config, &f.Config); err != nil {
			return nil, fmt.Errorf("decode filter config: %w", err)
		}
	}
	// Older rows may carry partial configs; normalize so neutral sentinels
	// are always present.
	f.Config = f.Config.Normalized()

	return &f, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
