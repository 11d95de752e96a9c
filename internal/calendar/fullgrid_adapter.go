package calendar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepline/prepline/internal/calendar/fullgrid"
	"github.com/prepline/prepline/internal/model"
)

// Bidirectional view tables between canonical names and the fullgrid
// widget's native identifiers. Every canonical name must round-trip.
var fullgridViewOf = map[ViewName]string{
	ViewMonth:                fullgrid.ViewDayGridMonth,
	ViewTimeGridWeek:         fullgrid.ViewTimeGridWeek,
	ViewTimeGridDay:          fullgrid.ViewTimeGridDay,
	ViewResourceDay:          fullgrid.ViewResourceTimeGridDay,
	ViewResourceTimelineWeek: fullgrid.ViewResourceTimelineWeek,
}

var fullgridViewFrom = map[string]ViewName{
	fullgrid.ViewDayGridMonth:         ViewMonth,
	fullgrid.ViewTimeGridWeek:         ViewTimeGridWeek,
	fullgrid.ViewTimeGridDay:          ViewTimeGridDay,
	fullgrid.ViewResourceTimeGridDay:  ViewResourceDay,
	fullgrid.ViewResourceTimelineWeek: ViewResourceTimelineWeek,
}

// FullGridRenderer adapts the fullgrid widget to the canonical Renderer
// contract. It keeps the canonical event list around so native
// callbacks, which only carry event IDs, can be translated back into
// full events.
type FullGridRenderer struct {
	widget *fullgrid.Calendar
	events map[string]model.Event
	cb     Callbacks
}

// NewFullGridRenderer builds the adapter around a fresh widget.
func NewFullGridRenderer() *FullGridRenderer {
	r := &FullGridRenderer{events: make(map[string]model.Event)}

	r.widget = fullgrid.New(fullgrid.Options{
		InitialView: fullgrid.ViewTimeGridWeek,
		EventClick:  r.onEventClick,
		DateClick:   r.onDateClick,
		EventDrop:   r.onEventDrop,
		EventResize: r.onEventResize,
		DatesSet:    r.onDatesSet,
		EventContent: func(eventID, viewID string, width int) string {
			ev, ok := r.events[eventID]
			if !ok {
				return ""
			}
			return RenderEvent(ev, viewFromFullgrid(viewID), width)
		},
	})

	return r
}

// Name identifies the underlying widget.
func (r *FullGridRenderer) Name() string { return "fullgrid" }

// SetEvents replaces the displayed events, translating to the widget's
// native shape and refreshing the ID lookup.
func (r *FullGridRenderer) SetEvents(events []model.Event) {
	r.events = make(map[string]model.Event, len(events))
	native := make([]fullgrid.Event, 0, len(events))
	for _, ev := range events {
		r.events[ev.ID] = ev
		native = append(native, fullgrid.Event{
			ID:         ev.ID,
			Title:      ev.Title,
			Start:      ev.Start,
			End:        ev.End,
			AllDay:     ev.AllDay,
			ResourceID: ev.ResourceID,
		})
	}
	r.widget.SetEvents(native)
}

// SetResources replaces the resource lanes. A nil or empty slice
// disables grouping in the widget.
func (r *FullGridRenderer) SetResources(resources []model.Resource) {
	if len(resources) == 0 {
		r.widget.SetResources(nil)
		return
	}
	native := make([]fullgrid.Resource, len(resources))
	for i, res := range resources {
		native[i] = fullgrid.Resource{ID: res.ID, Title: res.Title}
	}
	r.widget.SetResources(native)
}

// SetViewState positions the widget, applying the per-view chip cap.
func (r *FullGridRenderer) SetViewState(state ViewState) {
	nativeView, ok := fullgridViewOf[state.View]
	if !ok {
		nativeView = fullgrid.ViewTimeGridDay
	}
	r.widget.SetDayMaxEvents(cellLimitFor(viewFromFullgrid(nativeView)))
	r.widget.ChangeView(nativeView, state.CurrentDate)
}

// ViewState reports the widget position in canonical terms.
func (r *FullGridRenderer) ViewState() ViewState {
	return ViewState{
		CurrentDate: r.widget.CurrentDate(),
		View:        viewFromFullgrid(r.widget.CurrentView()),
	}
}

// SetCallbacks wires the canonical callback set.
func (r *FullGridRenderer) SetCallbacks(cb Callbacks) { r.cb = cb }

// SetSize updates the render dimensions.
func (r *FullGridRenderer) SetSize(width, height int) { r.widget.SetSize(width, height) }

// HandleKey forwards a key press to the widget.
func (r *FullGridRenderer) HandleKey(msg tea.KeyMsg) bool { return r.widget.HandleKey(msg) }

// View renders the widget.
func (r *FullGridRenderer) View() string { return r.widget.View() }

func (r *FullGridRenderer) onEventClick(eventID string) {
	if r.cb.OnEventSelect == nil {
		return
	}
	if ev, ok := r.events[eventID]; ok {
		r.cb.OnEventSelect(ev)
	}
}

func (r *FullGridRenderer) onDateClick(date time.Time) {
	if r.cb.OnDateSelect != nil {
		r.cb.OnDateSelect(date)
	}
}

func (r *FullGridRenderer) onEventDrop(eventID string, newStart, newEnd time.Time, resourceID string) {
	if r.cb.OnEventMove == nil {
		return
	}
	ev, ok := r.events[eventID]
	if !ok {
		return
	}
	r.cb.OnEventMove(EventChange{
		Old:           ev,
		NewStart:      newStart,
		NewEnd:        newEnd,
		NewResourceID: resourceID,
	})
}

func (r *FullGridRenderer) onEventResize(eventID string, newEnd time.Time) {
	if r.cb.OnEventResize == nil {
		return
	}
	ev, ok := r.events[eventID]
	if !ok {
		return
	}
	r.cb.OnEventResize(EventChange{
		Old:           ev,
		NewStart:      ev.Start,
		NewEnd:        newEnd,
		NewResourceID: ev.ResourceID,
	})
}

func (r *FullGridRenderer) onDatesSet(viewID string, anchor time.Time) {
	if r.cb.OnRangeChange != nil {
		r.cb.OnRangeChange(RangeChange{Date: anchor, View: viewFromFullgrid(viewID)})
	}
}

// viewFromFullgrid translates a native view identifier back to the
// canonical name. Unknown identifiers fall back to the day view.
func viewFromFullgrid(viewID string) ViewName {
	if v, ok := fullgridViewFrom[viewID]; ok {
		return v
	}
	return ViewTimeGridDay
}

// cellLimitFor is the per-cell chip cap: month cells hold two chips,
// time-grid slots hold one before the overflow indicator.
func cellLimitFor(view ViewName) int {
	if view == ViewMonth {
		return 2
	}
	if DensityFor(view) == DensityCompact {
		return 1
	}
	return 2
}
