package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// issueColumns is the column list used for SELECT statements on the issues table.
const issueColumns = `id, workspace_id, title, description, state, priority,
	assignee, due_at, created_at, created_by, updated_at`

// savedFilterColumns is the column list for the saved_filters table.
const savedFilterColumns = `id, workspace_id, user_id, name, config, is_default,
	created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// --- Issues ---

func queryCreateIssue(ctx context.Context, db executor, is *model.Issue) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO issues (
			id, workspace_id, title, description, state, priority,
			assignee, due_at, created_at, created_by, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)`,
		is.ID,
		is.WorkspaceID,
		is.Title,
		is.Description,
		string(is.State),
		is.Priority,
		nullString(string(is.Assignee)),
		nullTimePtr(is.DueAt),
		is.CreatedAt,
		is.CreatedBy,
		is.UpdatedAt,
	)
	return err
}

func queryGetIssue(ctx context.Context, db executor, id string) (*model.Issue, error) {
	row := db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	is, err := scanIssue(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return is, err
}

func queryListIssues(ctx context.Context, db executor, workspaceID string, filter model.IssueFilter) ([]*model.Issue, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if workspaceID != "" {
		whereClauses = append(whereClauses, "workspace_id = "+nextArg())
		args = append(args, workspaceID)
	}

	if len(filter.States) > 0 {
		placeholders := make([]string, len(filter.States))
		for i, s := range filter.States {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "state IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Priority != nil {
		whereClauses = append(whereClauses, "priority = "+nextArg())
		args = append(args, *filter.Priority)
	}

	if filter.Assignee != "" {
		whereClauses = append(whereClauses, "assignee = "+nextArg())
		args = append(args, filter.Assignee)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + issueColumns +
		" FROM issues" + whereSQL + " ORDER BY " + parseSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []*model.Issue
	var total int
	for rows.Next() {
		is, t, err := scanIssueWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan issues: %w", err)
		}
		total = t
		issues = append(issues, is)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate issues: %w", err)
	}

	return issues, total, nil
}

// parseSortClause maps an API sort token ("-priority", "created_at", ...) to
// a safe ORDER BY clause. Unknown columns fall back to newest-first.
func parseSortClause(sort string) string {
	desc := false
	col := sort
	if strings.HasPrefix(col, "-") {
		desc = true
		col = col[1:]
	}

	switch col {
	case "priority", "title", "state", "created_at", "updated_at":
		// allowed as-is
	case "due_at":
		// Issues without a due date go last regardless of direction.
		if desc {
			return "due_at DESC NULLS LAST"
		}
		return "due_at ASC NULLS LAST"
	default:
		return "created_at DESC"
	}

	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func queryUpdateIssue(ctx context.Context, db executor, is *model.Issue) error {
	res, err := db.ExecContext(ctx, `
		UPDATE issues SET
			title = $2,
			description = $3,
			state = $4,
			priority = $5,
			assignee = $6,
			due_at = $7,
			updated_at = $8
		WHERE id = $1`,
		is.ID,
		is.Title,
		is.Description,
		string(is.State),
		is.Priority,
		nullString(string(is.Assignee)),
		nullTimePtr(is.DueAt),
		is.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "issue", is.ID)
}

func queryDeleteIssue(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "issue", id)
}

// --- Saved filters ---

func queryCreateSavedFilter(ctx context.Context, db executor, f *model.SavedFilter) error {
	cfg, err := json.Marshal(f.Config)
	if err != nil {
		return fmt.Errorf("marshal filter config: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO saved_filters (
			id, workspace_id, user_id, name, config, is_default,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8
		)`,
		f.ID,
		f.WorkspaceID,
		f.UserID,
		f.Name,
		cfg,
		f.IsDefault,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func queryGetSavedFilter(ctx context.Context, db executor, id string) (*model.SavedFilter, error) {
	row := db.QueryRowContext(ctx, `SELECT `+savedFilterColumns+` FROM saved_filters WHERE id = $1`, id)
	f, err := scanSavedFilter(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return f, err
}

func queryListSavedFilters(ctx context.Context, db executor, workspaceID, userID string) ([]*model.SavedFilter, error) {
	var (
		whereClauses []string
		args         []any
	)
	if workspaceID != "" {
		args = append(args, workspaceID)
		whereClauses = append(whereClauses, fmt.Sprintf("workspace_id = $%d", len(args)))
	}
	if userID != "" {
		args = append(args, userID)
		whereClauses = append(whereClauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT ` + savedFilterColumns + ` FROM saved_filters`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY created_at ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saved filters: %w", err)
	}
	defer rows.Close()

	var filters []*model.SavedFilter
	for rows.Next() {
		f, err := scanSavedFilter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved filters: %w", err)
		}
		filters = append(filters, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved filters: %w", err)
	}
	return filters, nil
}

func queryGetDefaultSavedFilter(ctx context.Context, db executor, workspaceID, userID string) (*model.SavedFilter, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+savedFilterColumns+` FROM saved_filters
		WHERE workspace_id = $1 AND user_id = $2 AND is_default`,
		workspaceID, userID)
	f, err := scanSavedFilter(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return f, err
}

func queryUnsetDefaultSavedFilter(ctx context.Context, db executor, workspaceID, userID string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE saved_filters SET is_default = FALSE, updated_at = NOW()
		WHERE workspace_id = $1 AND user_id = $2 AND is_default`,
		workspaceID, userID)
	return err
}

func queryMarkDefaultSavedFilter(ctx context.Context, db executor, id string) (*model.SavedFilter, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE saved_filters SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+savedFilterColumns,
		id)
	f, err := scanSavedFilter(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved filter %s not found", id)
	}
	return f, err
}

func queryDeleteSavedFilter(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM saved_filters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res, "saved filter", id)
}

func requireRowAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", kind, id)
	}
	return nil
}
