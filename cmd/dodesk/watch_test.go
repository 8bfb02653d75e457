package main

import (
	"testing"
	"time"

	"github.com/shilendra-dev/dodesk/internal/model"
)

func TestDiffIssues(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	seen := make(map[string]time.Time)

	// First pass: everything is new.
	issues := []*model.Issue{
		{ID: "iss-1", UpdatedAt: t0},
		{ID: "iss-2", UpdatedAt: t0},
	}
	changed := diffIssues(issues, seen)
	if len(changed) != 2 {
		t.Fatalf("first pass: expected 2 changed, got %d", len(changed))
	}

	// Second pass with no changes: nothing reported.
	changed = diffIssues(issues, seen)
	if len(changed) != 0 {
		t.Fatalf("unchanged pass: expected 0 changed, got %d", len(changed))
	}

	// One issue updated, one new.
	issues = []*model.Issue{
		{ID: "iss-1", UpdatedAt: t1},
		{ID: "iss-2", UpdatedAt: t0},
		{ID: "iss-3", UpdatedAt: t0},
	}
	changed = diffIssues(issues, seen)
	if len(changed) != 2 {
		t.Fatalf("update pass: expected 2 changed, got %d", len(changed))
	}
	if changed[0].ID != "iss-1" || changed[1].ID != "iss-3" {
		t.Fatalf("update pass: got %s, %s", changed[0].ID, changed[1].ID)
	}
}

func TestDiffIssues_SeenUpdatedInPlace(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	seen := make(map[string]time.Time)

	diffIssues([]*model.Issue{{ID: "iss-1", UpdatedAt: t0}}, seen)
	if got, ok := seen["iss-1"]; !ok || !got.Equal(t0) {
		t.Fatalf("seen[iss-1] = %v, want %v", got, t0)
	}
}
