package events

import (
	"context"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// Event topic constants
const (
	// TopicAll is the wildcard subscription covering every dodesk event.
	TopicAll = "dodesk.>"

	// TopicIssuesAll covers issue mutations only, excluding saved-filter
	// events.
	TopicIssuesAll = "dodesk.issue.>"

	TopicIssueCreated = "dodesk.issue.created"
	TopicIssueUpdated = "dodesk.issue.updated"
	TopicIssueDeleted = "dodesk.issue.deleted"

	TopicFilterCreated    = "dodesk.filter.created"
	TopicFilterDeleted    = "dodesk.filter.deleted"
	TopicFilterDefaultSet = "dodesk.filter.default_set"
)

// Event types

type IssueCreated struct {
	Issue *model.Issue `json:"issue"`
}

type IssueUpdated struct {
	Issue   *model.Issue   `json:"issue"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type IssueDeleted struct {
	IssueID     string `json:"issue_id"`
	WorkspaceID string `json:"workspace_id"`
}

type FilterCreated struct {
	Filter *model.SavedFilter `json:"filter"`
}

type FilterDeleted struct {
	FilterID    string `json:"filter_id"`
	WorkspaceID string `json:"workspace_id"`
	WasDefault  bool   `json:"was_default"`
}

// FilterDefaultSet is emitted after the default flag moves; PreviousID is
// empty when no filter was default before.
type FilterDefaultSet struct {
	Filter     *model.SavedFilter `json:"filter"`
	PreviousID string             `json:"previous_id,omitempty"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers messages for the topic, which may use NATS
	// wildcards. Call the returned cancel function to unsubscribe and
	// close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}
