package calendar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepline/prepline/internal/calendar/planner"
	"github.com/prepline/prepline/internal/model"
)

// Bidirectional view tables for the planner board.
var plannerViewOf = map[ViewName]string{
	ViewMonth:                planner.Month,
	ViewTimeGridWeek:         planner.Week,
	ViewTimeGridDay:          planner.Day,
	ViewResourceDay:          planner.ResourceDay,
	ViewResourceTimelineWeek: planner.TimelineWeek,
}

var plannerViewFrom = map[string]ViewName{
	planner.Month:        ViewMonth,
	planner.Week:         ViewTimeGridWeek,
	planner.Day:          ViewTimeGridDay,
	planner.ResourceDay:  ViewResourceDay,
	planner.TimelineWeek: ViewResourceTimelineWeek,
}

// PlannerRenderer adapts the planner board to the canonical Renderer
// contract. The board reports interactions through keys only, so the
// adapter keeps the canonical events for lookup, exactly like the
// fullgrid adapter does.
type PlannerRenderer struct {
	board  *planner.Board
	events map[string]model.Event
	cb     Callbacks
}

// NewPlannerRenderer builds the adapter around a fresh board.
func NewPlannerRenderer() *PlannerRenderer {
	r := &PlannerRenderer{
		board:  planner.New(),
		events: make(map[string]model.Event),
	}

	r.board.SetHooks(planner.Hooks{
		OnCellActivate:       r.onCellActivate,
		OnAppointmentMoved:   r.onMoved,
		OnAppointmentResized: r.onResized,
		OnViewChanged:        r.onViewChanged,
	})
	r.board.SetCellRenderer(func(key string, width int) string {
		ev, ok := r.events[key]
		if !ok {
			return ""
		}
		view, _ := r.board.Focus()
		return RenderEvent(ev, viewFromPlanner(view), width)
	})

	return r
}

// Name identifies the underlying widget.
func (r *PlannerRenderer) Name() string { return "planner" }

// SetEvents replaces the displayed events.
func (r *PlannerRenderer) SetEvents(events []model.Event) {
	r.events = make(map[string]model.Event, len(events))
	appts := make([]planner.Appointment, 0, len(events))
	for _, ev := range events {
		r.events[ev.ID] = ev
		appts = append(appts, planner.Appointment{
			Key:     ev.ID,
			Subject: ev.Title,
			Begin:   ev.Start,
			Finish:  ev.End,
			AllDay:  ev.AllDay,
			LaneKey: ev.ResourceID,
		})
	}
	r.board.Load(appts)
}

// SetResources replaces the lanes; nil or empty disables grouping.
func (r *PlannerRenderer) SetResources(resources []model.Resource) {
	if len(resources) == 0 {
		r.board.SetLanes(nil)
		return
	}
	lanes := make([]planner.Lane, len(resources))
	for i, res := range resources {
		lanes[i] = planner.Lane{Key: res.ID, Label: res.Title}
	}
	r.board.SetLanes(lanes)
}

// SetViewState positions the board, applying the per-view row cap.
func (r *PlannerRenderer) SetViewState(state ViewState) {
	nativeView, ok := plannerViewOf[state.View]
	if !ok {
		nativeView = planner.Day
	}
	r.board.SetSlotCap(cellLimitFor(viewFromPlanner(nativeView)))
	r.board.Show(nativeView, state.CurrentDate)
}

// ViewState reports the board position in canonical terms.
func (r *PlannerRenderer) ViewState() ViewState {
	view, focus := r.board.Focus()
	return ViewState{CurrentDate: focus, View: viewFromPlanner(view)}
}

// SetCallbacks wires the canonical callback set.
func (r *PlannerRenderer) SetCallbacks(cb Callbacks) { r.cb = cb }

// SetSize updates the render dimensions.
func (r *PlannerRenderer) SetSize(width, height int) { r.board.Resize(width, height) }

// HandleKey forwards a key press to the board.
func (r *PlannerRenderer) HandleKey(msg tea.KeyMsg) bool { return r.board.Update(msg) }

// View renders the board.
func (r *PlannerRenderer) View() string { return r.board.Render() }

func (r *PlannerRenderer) onCellActivate(when time.Time, key string) {
	if key == "" {
		if r.cb.OnDateSelect != nil {
			r.cb.OnDateSelect(when)
		}
		return
	}
	if r.cb.OnEventSelect == nil {
		return
	}
	if ev, ok := r.events[key]; ok {
		r.cb.OnEventSelect(ev)
	}
}

func (r *PlannerRenderer) onMoved(key string, begin, finish time.Time, laneKey string) {
	if r.cb.OnEventMove == nil {
		return
	}
	ev, ok := r.events[key]
	if !ok {
		return
	}
	r.cb.OnEventMove(EventChange{
		Old:           ev,
		NewStart:      begin,
		NewEnd:        finish,
		NewResourceID: laneKey,
	})
}

func (r *PlannerRenderer) onResized(key string, finish time.Time) {
	if r.cb.OnEventResize == nil {
		return
	}
	ev, ok := r.events[key]
	if !ok {
		return
	}
	r.cb.OnEventResize(EventChange{
		Old:           ev,
		NewStart:      ev.Start,
		NewEnd:        finish,
		NewResourceID: ev.ResourceID,
	})
}

func (r *PlannerRenderer) onViewChanged(view string, focus time.Time) {
	if r.cb.OnRangeChange != nil {
		r.cb.OnRangeChange(RangeChange{Date: focus, View: viewFromPlanner(view)})
	}
}

// viewFromPlanner translates a native board view back to the canonical
// name, falling back to the day view for anything unknown.
func viewFromPlanner(view string) ViewName {
	if v, ok := plannerViewFrom[view]; ok {
		return v
	}
	return ViewTimeGridDay
}

// NewRenderer selects a renderer implementation by name, defaulting to
// the fullgrid widget.
func NewRenderer(name string) Renderer {
	if name == "planner" {
		return NewPlannerRenderer()
	}
	return NewFullGridRenderer()
}
