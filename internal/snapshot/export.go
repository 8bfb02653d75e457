package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/store"
)

// Stats describes what one export contains. Destinations use it to label
// whatever they persist (commit messages, object metadata).
type Stats struct {
	Issues  int
	Filters int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d issues, %d filters", s.Issues, s.Filters)
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string `json:"version"`
	Type        string `json:"type"`
	IssueCount  int    `json:"issue_count"`
	FilterCount int    `json:"filter_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all issues and saved filters from the store as JSONL
// to w. The output is deterministic: records are sorted by ID and the
// header carries no clock reading, so repeated exports of unchanged data
// are byte-identical and destinations can skip no-op writes.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) (Stats, error) {
	// Fetch all issues across workspaces (no filter, no limit).
	issues, _, err := s.ListIssues(ctx, "", model.IssueFilter{Sort: "created_at"})
	if err != nil {
		return Stats{}, fmt.Errorf("list issues: %w", err)
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ID < issues[j].ID
	})

	// Fetch all saved filters across workspaces and users.
	filters, err := s.ListSavedFilters(ctx, "", "")
	if err != nil {
		return Stats{}, fmt.Errorf("list saved filters: %w", err)
	}

	sort.Slice(filters, func(i, j int) bool {
		return filters[i].ID < filters[j].ID
	})

	stats := Stats{Issues: len(issues), Filters: len(filters)}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		IssueCount:  len(issues),
		FilterCount: len(filters),
	}); err != nil {
		return Stats{}, fmt.Errorf("encode header: %w", err)
	}

	for _, iss := range issues {
		if err := enc.Encode(record{Type: "issue", Data: iss}); err != nil {
			return Stats{}, fmt.Errorf("encode issue %s: %w", iss.ID, err)
		}
	}

	for _, f := range filters {
		if err := enc.Encode(record{Type: "filter", Data: f}); err != nil {
			return Stats{}, fmt.Errorf("encode filter %s: %w", f.ID, err)
		}
	}

	return stats, nil
}
