package idgen

import (
	"regexp"
	"testing"
)

func TestIssue_PrefixAndLength(t *testing.T) {
	id, err := Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if id[:len(IssuePrefix)] != IssuePrefix {
		t.Errorf("Issue() = %q, want prefix %q", id, IssuePrefix)
	}
	wantLen := len(IssuePrefix) + Length
	if len(id) != wantLen {
		t.Errorf("Issue() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
}

func TestFilter_Prefix(t *testing.T) {
	id, err := Filter()
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if id[:len(FilterPrefix)] != FilterPrefix {
		t.Errorf("Filter() = %q, want prefix %q", id, FilterPrefix)
	}
}

func TestGenerateWithPrefix_Charset(t *testing.T) {
	prefix := "test-"
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := GenerateWithPrefix(prefix)
		if err != nil {
			t.Fatalf("GenerateWithPrefix() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("GenerateWithPrefix() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestGenerateWithPrefix_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := GenerateWithPrefix(IssuePrefix)
		if err != nil {
			t.Fatalf("GenerateWithPrefix() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
