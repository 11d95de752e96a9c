package calendar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepline/prepline/internal/model"
)

// EventChange describes a proposed move or resize. Old carries the
// event as currently displayed (looked up by ID from the renderer's
// event list); the New fields carry the proposed state. The renderer
// never applies the change itself: persistence is the caller's job, and
// if the caller does not refresh the event list after persisting, the
// event visually reverts on the next render.
type EventChange struct {
	Old           model.Event
	NewStart      time.Time
	NewEnd        time.Time
	NewResourceID string
}

// RangeChange reports a navigation or view switch. Date and view are
// always delivered together because the underlying widgets conflate
// navigation and view-switch notifications.
type RangeChange struct {
	Date time.Time
	View ViewName
}

// Callbacks is the canonical callback set a screen wires into a
// renderer. Nil members are simply not invoked.
type Callbacks struct {
	OnEventSelect func(model.Event)
	OnEventMove   func(EventChange)
	OnEventResize func(EventChange)
	OnDateSelect  func(time.Time)
	OnRangeChange func(RangeChange)
}

// Renderer is the canonical contract a calendar widget adapter
// implements. Screens depend only on this interface; the concrete
// widget is chosen at composition time. Renderers are controlled
// components: they reflect the state they are given and report
// interactions through Callbacks.
type Renderer interface {
	// Name identifies the underlying widget implementation.
	Name() string

	// SetEvents replaces the displayed event list. Events are rebuilt
	// by the caller on every refresh; the renderer holds no cache
	// beyond this list.
	SetEvents(events []model.Event)

	// SetResources replaces the resource lanes. A nil or empty slice
	// disables resource grouping entirely; resource-related state is
	// omitted from the underlying widget, not passed as an empty list.
	SetResources(resources []model.Resource)

	// SetViewState positions the widget. Unrecognized view names fall
	// back to the most detailed day-level view.
	SetViewState(state ViewState)

	// ViewState reports the widget's current position in canonical terms.
	ViewState() ViewState

	// SetCallbacks wires the canonical callback set.
	SetCallbacks(cb Callbacks)

	// SetSize updates the render dimensions in terminal cells.
	SetSize(width, height int)

	// HandleKey processes one key message, reporting any interaction
	// through the callbacks. Returns true when the key was consumed.
	HandleKey(msg tea.KeyMsg) bool

	// View renders the widget.
	View() string
}
