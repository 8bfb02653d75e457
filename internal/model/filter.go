package model

// IssueFilter holds criteria for querying issues from the store.
type IssueFilter struct {
	States   []IssueState `json:"states,omitempty"`
	Priority *int         `json:"priority,omitempty"`
	Assignee string       `json:"assignee,omitempty"`
	Search   string       `json:"search,omitempty"` // substring match on title/description
	Sort     string       `json:"sort,omitempty"`   // e.g. "-priority", "created_at"; prefix "-" = descending
	Limit    int          `json:"limit,omitempty"`
	Offset   int          `json:"offset,omitempty"`
}
