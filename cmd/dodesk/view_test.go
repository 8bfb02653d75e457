package main

import (
	"testing"

	"github.com/shilendra-dev/dodesk/internal/model"
)

func TestResolveFilter(t *testing.T) {
	filters := []*model.SavedFilter{
		{ID: "flt-abc", Name: "Urgent"},
		{ID: "flt-def", Name: "Mine"},
		{ID: "flt-ghi", Name: "flt-abc"}, // name colliding with another id
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"by id", "flt-def", "flt-def", false},
		{"by name", "Urgent", "flt-abc", false},
		{"id wins over colliding name", "flt-abc", "flt-abc", false},
		{"none sentinel passes through", model.SelectedNone, model.SelectedNone, false},
		{"unknown", "ghost", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveFilter(filters, tc.arg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("resolveFilter(%q) = %q, want %q", tc.arg, got, tc.want)
			}
		})
	}
}
