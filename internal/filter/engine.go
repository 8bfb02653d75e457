// Package filter implements in-memory filtering and ordering of issue
// collections against a FilterConfig. Apply is a pure function: it never
// mutates its inputs and never fails, so callers can run it on every
// keystroke of a view without error handling.
package filter

import (
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// Apply returns the issues matched by cfg, ordered per cfg.Sort. All active
// filter clauses must match (conjunction). The sort is stable: issues that
// compare equal keep their input order. Unknown sort options leave the
// filtered issues in input order.
func Apply(issues []*model.Issue, cfg model.FilterConfig) []*model.Issue {
	cfg = cfg.Normalized()

	out := make([]*model.Issue, 0, len(issues))
	for _, is := range issues {
		if is == nil {
			continue
		}
		if matches(is, cfg) {
			out = append(out, is)
		}
	}

	sortIssues(out, cfg.Sort)
	return out
}

// Matches reports whether a single issue passes every active clause of cfg.
func Matches(is *model.Issue, cfg model.FilterConfig) bool {
	return matches(is, cfg.Normalized())
}

func matches(is *model.Issue, cfg model.FilterConfig) bool {
	if cfg.State != model.FilterAll && string(is.State) != cfg.State {
		return false
	}
	if cfg.Priority != model.FilterAll && strconv.Itoa(is.Priority) != cfg.Priority {
		return false
	}
	if cfg.Assignee != model.FilterAll && !is.Assignee.Equal(model.AssigneeRef(cfg.Assignee)) {
		return false
	}
	return true
}

func sortIssues(issues []*model.Issue, opt model.SortOption) {
	var less func(a, b *model.Issue) bool

	switch opt {
	case model.SortDueDateAsc:
		less = func(a, b *model.Issue) bool { return dueBefore(a, b, false) }
	case model.SortDueDateDesc:
		less = func(a, b *model.Issue) bool { return dueBefore(a, b, true) }
	case model.SortPriorityDesc:
		less = func(a, b *model.Issue) bool { return a.Priority > b.Priority }
	case model.SortPriorityAsc:
		less = func(a, b *model.Issue) bool { return a.Priority < b.Priority }
	case model.SortTitleAsc, model.SortTitleDesc:
		// The collator buffers state between comparisons, so it must not be
		// shared across goroutines; build one per sort.
		c := collate.New(language.English, collate.Loose)
		if opt == model.SortTitleAsc {
			less = func(a, b *model.Issue) bool { return c.CompareString(a.Title, b.Title) < 0 }
		} else {
			less = func(a, b *model.Issue) bool { return c.CompareString(a.Title, b.Title) > 0 }
		}
	case model.SortCreatedAsc:
		less = func(a, b *model.Issue) bool { return createdKey(a) < createdKey(b) }
	case model.SortCreatedDesc:
		less = func(a, b *model.Issue) bool { return createdKey(a) > createdKey(b) }
	default:
		// SortNone and anything unrecognized: keep input order.
		return
	}

	sort.SliceStable(issues, func(i, j int) bool { return less(issues[i], issues[j]) })
}

// dueBefore orders by due date with missing dates always sorting last,
// under both ascending and descending order.
func dueBefore(a, b *model.Issue, desc bool) bool {
	switch {
	case a.DueAt == nil && b.DueAt == nil:
		return false
	case a.DueAt == nil:
		return false
	case b.DueAt == nil:
		return true
	}
	if desc {
		return a.DueAt.After(*b.DueAt)
	}
	return a.DueAt.Before(*b.DueAt)
}

// createdKey renders the creation time for lexicographic comparison.
// Comparing fixed-width RFC 3339 renderings in UTC keeps the ordering total
// and deterministic regardless of the zone the timestamp was recorded in.
func createdKey(is *model.Issue) string {
	if is.CreatedAt.IsZero() {
		return ""
	}
	return is.CreatedAt.UTC().Format(time.RFC3339)
}
