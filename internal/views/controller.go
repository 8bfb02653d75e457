// Package views holds the client-side saved-view machinery: a cache of the
// workspace's saved filters (SavedFilterStore) and the controller that
// mediates between manual filter edits and saved-view selection.
//
// Both types are owned by a single goroutine (a UI event loop or a CLI
// invocation) and do no internal locking. Construct one instance per view.
package views

import (
	"github.com/shilendra-dev/dodesk/internal/filter"
	"github.com/shilendra-dev/dodesk/internal/model"
)

// ViewSource resolves saved filter ids against the currently loaded list.
// SavedFilterStore implements it.
type ViewSource interface {
	FilterByID(id string) (*model.SavedFilter, bool)
}

// Controller tracks the active FilterConfig and which saved view, if any,
// it was copied from.
//
// The selected-view pointer is deliberately loose: it records that the
// config was seeded from that view at selection time, and manual edits do
// not detach it. The one automatic detachment is the neutrality rule:
// whenever a manual edit returns every field to its neutral value, the
// pointer resets to "none".
type Controller struct {
	source ViewSource

	active     model.FilterConfig
	selectedID string

	// userEdited blocks a late-arriving default view from clobbering
	// filters the user already touched.
	userEdited bool

	// onViewCleared, when non-nil, fires each time the neutrality rule
	// clears a previously selected view.
	onViewCleared func()
}

// NewController returns a controller in the neutral state. onViewCleared
// may be nil.
func NewController(source ViewSource, onViewCleared func()) *Controller {
	return &Controller{
		source:        source,
		active:        model.NeutralConfig(),
		selectedID:    model.SelectedNone,
		onViewCleared: onViewCleared,
	}
}

// ActiveConfig returns the current filter config.
func (c *Controller) ActiveConfig() model.FilterConfig {
	return c.active
}

// SelectedViewID returns the id of the selected saved view, or
// model.SelectedNone.
func (c *Controller) SelectedViewID() string {
	return c.selectedID
}

// ApplyDefault seeds the controller from the workspace's default view. It
// is a no-op once the user has edited or selected anything, so a slow
// default fetch cannot overwrite newer state. A nil argument (no default
// exists) resets an untouched controller to neutral.
func (c *Controller) ApplyDefault(f *model.SavedFilter) {
	if c.userEdited {
		return
	}
	if f == nil {
		c.active = model.NeutralConfig()
		c.selectedID = model.SelectedNone
		return
	}
	c.active = f.Config.Normalized()
	c.selectedID = f.ID
}

// SetStateFilter updates the state filter field.
func (c *Controller) SetStateFilter(v string) {
	c.active.State = v
	c.afterEdit()
}

// SetPriorityFilter updates the priority filter field.
func (c *Controller) SetPriorityFilter(v string) {
	c.active.Priority = v
	c.afterEdit()
}

// SetAssigneeFilter updates the assignee filter field.
func (c *Controller) SetAssigneeFilter(v string) {
	c.active.Assignee = v
	c.afterEdit()
}

// SetSortOption updates the sort option.
func (c *Controller) SetSortOption(v model.SortOption) {
	c.active.Sort = v
	c.afterEdit()
}

// afterEdit runs once per manual field edit: it marks the controller as
// user-touched and applies the neutrality rule.
func (c *Controller) afterEdit() {
	c.userEdited = true
	if !c.active.IsNeutral() {
		return
	}
	if c.selectedID == model.SelectedNone {
		return
	}
	c.selectedID = model.SelectedNone
	if c.onViewCleared != nil {
		c.onViewCleared()
	}
}

// SelectView applies the saved view with the given id, overwriting every
// filter field. The model.SelectedNone sentinel resets to neutral. An id
// that is not in the loaded list is a silent no-op: selection racing a list
// refresh is tolerated, not reported.
//
// Selecting a view never triggers the neutrality rule; choosing "none" IS
// the explicit neutral reset, not a byproduct of edits.
func (c *Controller) SelectView(id string) {
	c.userEdited = true
	if id == model.SelectedNone {
		c.active = model.NeutralConfig()
		c.selectedID = model.SelectedNone
		return
	}
	f, ok := c.source.FilterByID(id)
	if !ok {
		return
	}
	c.active = f.Config.Normalized()
	c.selectedID = f.ID
}

// ClearAll resets every filter field and the selected view. Equivalent to
// SelectView(model.SelectedNone).
func (c *Controller) ClearAll() {
	c.SelectView(model.SelectedNone)
}

// Visible returns issues filtered and ordered by the active config.
func (c *Controller) Visible(issues []*model.Issue) []*model.Issue {
	return filter.Apply(issues, c.active)
}
