package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateIssue checks an Issue for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the issue is valid.
func ValidateIssue(is *Issue) error {
	var ve ValidationError

	if strings.TrimSpace(is.WorkspaceID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "workspace_id", Message: "is required"})
	}

	// Title: required and at most 500 characters.
	title := strings.TrimSpace(is.Title)
	if title == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	} else if len([]rune(title)) > 500 {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "must be 500 characters or fewer"})
	}

	if !ValidPriority(is.Priority) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "priority",
			Message: fmt.Sprintf("must be between 0 and 4, got %d", is.Priority),
		})
	}

	if !is.State.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "state",
			Message: fmt.Sprintf("invalid value %q", is.State),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateSavedFilter checks a SavedFilter for constraint violations.
func ValidateSavedFilter(f *SavedFilter) error {
	var ve ValidationError

	if strings.TrimSpace(f.WorkspaceID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "workspace_id", Message: "is required"})
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	} else if len([]rune(name)) > 120 {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "must be 120 characters or fewer"})
	}

	if !f.Config.Sort.IsValid() {
		// Unknown sort tokens are tolerated everywhere else (they degrade to
		// no ordering), but persisting one is almost certainly a client bug.
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "filter_config.sortOption",
			Message: fmt.Sprintf("unknown value %q", f.Config.Sort),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
