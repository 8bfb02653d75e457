package model

// FilterAll is the neutral value for the state, priority, and assignee
// filter fields: the clause is inactive and every issue matches.
const FilterAll = "All"

// SortOption enumerates the supported issue orderings. The values are the
// wire tokens stored inside saved filter configs; unknown tokens degrade to
// SortNone rather than erroring.
type SortOption string

const (
	SortNone         SortOption = "None"
	SortDueDateAsc   SortOption = "Due Date (Asc)"
	SortDueDateDesc  SortOption = "Due Date (Desc)"
	SortPriorityDesc SortOption = "Priority (High → Low)"
	SortPriorityAsc  SortOption = "Priority (Low → High)"
	SortTitleAsc     SortOption = "Title (A → Z)"
	SortTitleDesc    SortOption = "Title (Z → A)"
	SortCreatedAsc   SortOption = "Date Created (Oldest First)"
	SortCreatedDesc  SortOption = "Date Created (Newest First)"
)

// IsValid checks whether the sort option is a known value.
func (o SortOption) IsValid() bool {
	switch o {
	case SortNone, SortDueDateAsc, SortDueDateDesc,
		SortPriorityDesc, SortPriorityAsc,
		SortTitleAsc, SortTitleDesc,
		SortCreatedAsc, SortCreatedDesc:
		return true
	}
	return false
}

// FilterConfig holds one view's filter and sort selections. A config where
// every field equals its neutral value matches all issues in their original
// order.
//
// Priority is carried as a string token ("All" or "0".."4") so the neutral
// sentinel and the numeric levels share one field, matching the stored
// saved-filter format.
type FilterConfig struct {
	State    string     `json:"stateFilter"`
	Priority string     `json:"priorityFilter"`
	Assignee string     `json:"assigneeFilter"`
	Sort     SortOption `json:"sortOption"`
}

// NeutralConfig returns the config with every field at its neutral value.
func NeutralConfig() FilterConfig {
	return FilterConfig{
		State:    FilterAll,
		Priority: FilterAll,
		Assignee: FilterAll,
		Sort:     SortNone,
	}
}

// IsNeutral reports whether every field equals its neutral value. This is
// the predicate that drives clearing of the selected saved view.
func (c FilterConfig) IsNeutral() bool {
	return c.State == FilterAll &&
		c.Priority == FilterAll &&
		c.Assignee == FilterAll &&
		c.Sort == SortNone
}

// Normalized returns a copy of the config with empty fields replaced by
// their neutral values. Configs arriving over the wire may omit fields.
func (c FilterConfig) Normalized() FilterConfig {
	if c.State == "" {
		c.State = FilterAll
	}
	if c.Priority == "" {
		c.Priority = FilterAll
	}
	if c.Assignee == "" {
		c.Assignee = FilterAll
	}
	if c.Sort == "" {
		c.Sort = SortNone
	}
	return c
}
