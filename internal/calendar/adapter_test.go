package calendar

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepline/prepline/internal/model"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func adapters() map[string]Renderer {
	return map[string]Renderer{
		"fullgrid": NewFullGridRenderer(),
		"planner":  NewPlannerRenderer(),
	}
}

func TestViewNamesRoundTripThroughEveryAdapter(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	for name, r := range adapters() {
		for _, view := range AllViews {
			r.SetViewState(ViewState{CurrentDate: date, View: view})
			got := r.ViewState()
			assert.Equal(t, view, got.View, "%s adapter, view %s", name, view)
			assert.Equal(t, date, got.CurrentDate, "%s adapter, view %s", name, view)
		}
	}
}

func TestUnknownCanonicalViewFallsBackToDay(t *testing.T) {
	for name, r := range adapters() {
		r.SetViewState(ViewState{
			CurrentDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			View:        ViewName("listWeek"),
		})
		assert.Equal(t, ViewTimeGridDay, r.ViewState().View, "%s adapter", name)
	}
}

func TestUnknownNativeViewsFallBackToDay(t *testing.T) {
	assert.Equal(t, ViewTimeGridDay, viewFromFullgrid("bogus"))
	assert.Equal(t, ViewTimeGridDay, viewFromPlanner("bogus"))
}

func TestRangeChangeCarriesDateAndViewTogether(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	for name, r := range adapters() {
		var got []RangeChange
		r.SetCallbacks(Callbacks{
			OnRangeChange: func(rc RangeChange) { got = append(got, rc) },
		})

		r.SetViewState(ViewState{CurrentDate: date, View: ViewMonth})

		require.NotEmpty(t, got, "%s adapter", name)
		last := got[len(got)-1]
		assert.Equal(t, ViewMonth, last.View, "%s adapter", name)
		assert.Equal(t, date, last.Date, "%s adapter", name)
	}
}

func TestCellLimitFor(t *testing.T) {
	assert.Equal(t, 2, cellLimitFor(ViewMonth))
	assert.Equal(t, 1, cellLimitFor(ViewTimeGridWeek))
	assert.Equal(t, 1, cellLimitFor(ViewTimeGridDay))
	assert.Equal(t, 2, cellLimitFor(ViewResourceDay))
	assert.Equal(t, 2, cellLimitFor(ViewResourceTimelineWeek))
}

func TestFullGridMoveReconstructsEventChange(t *testing.T) {
	ev := sampleEvent()
	r := NewFullGridRenderer()
	r.SetEvents([]model.Event{ev})

	var moved *EventChange
	r.SetCallbacks(Callbacks{
		OnEventMove: func(change EventChange) { moved = &change },
	})
	r.SetViewState(ViewState{CurrentDate: ev.Start, View: ViewTimeGridDay})

	r.HandleKey(key("m"))
	r.HandleKey(key("right"))
	r.HandleKey(key("enter"))

	require.NotNil(t, moved)
	assert.Equal(t, ev.ID, moved.Old.ID)
	assert.Equal(t, ev.Title, moved.Old.Title)
	assert.Equal(t, ev.Start.Add(time.Hour), moved.NewStart)
	assert.Equal(t, ev.End.Add(time.Hour), moved.NewEnd)
}

func TestFullGridResizeKeepsStartAndResource(t *testing.T) {
	ev := sampleEvent()
	ev.ResourceID = "s-9"
	r := NewFullGridRenderer()
	r.SetEvents([]model.Event{ev})

	var resized *EventChange
	r.SetCallbacks(Callbacks{
		OnEventResize: func(change EventChange) { resized = &change },
	})
	r.SetViewState(ViewState{CurrentDate: ev.Start, View: ViewTimeGridDay})

	r.HandleKey(key("r"))
	r.HandleKey(key("right"))
	r.HandleKey(key("enter"))

	require.NotNil(t, resized)
	assert.Equal(t, ev.Start, resized.NewStart)
	assert.Equal(t, ev.End.Add(time.Hour), resized.NewEnd)
	assert.Equal(t, "s-9", resized.NewResourceID)
}

func TestFullGridSelectAndDateSelect(t *testing.T) {
	ev := sampleEvent()
	r := NewFullGridRenderer()
	r.SetEvents([]model.Event{ev})

	var selected *model.Event
	var picked *time.Time
	r.SetCallbacks(Callbacks{
		OnEventSelect: func(e model.Event) { selected = &e },
		OnDateSelect:  func(d time.Time) { picked = &d },
	})

	r.SetViewState(ViewState{CurrentDate: ev.Start, View: ViewTimeGridDay})
	r.HandleKey(key("enter"))
	require.NotNil(t, selected)
	assert.Equal(t, ev.ID, selected.ID)

	// An empty slot activates as a date selection instead.
	empty := ev.Start.Add(3 * time.Hour)
	r.SetViewState(ViewState{CurrentDate: empty, View: ViewTimeGridDay})
	r.HandleKey(key("enter"))
	require.NotNil(t, picked)
	assert.Equal(t, empty, *picked)
}

func TestPlannerMoveReconstructsEventChange(t *testing.T) {
	ev := sampleEvent()
	r := NewPlannerRenderer()
	r.SetEvents([]model.Event{ev})

	var moved *EventChange
	r.SetCallbacks(Callbacks{
		OnEventMove: func(change EventChange) { moved = &change },
	})
	r.SetViewState(ViewState{CurrentDate: ev.Start, View: ViewTimeGridDay})

	r.HandleKey(key("m"))
	r.HandleKey(key("right"))
	r.HandleKey(key("enter"))

	require.NotNil(t, moved)
	assert.Equal(t, ev.ID, moved.Old.ID)
	assert.Equal(t, ev.Start.Add(30*time.Minute), moved.NewStart)
	assert.Equal(t, ev.End.Add(30*time.Minute), moved.NewEnd)
}

func TestPlannerEmptyCellActivatesDateSelect(t *testing.T) {
	r := NewPlannerRenderer()

	var picked *time.Time
	r.SetCallbacks(Callbacks{
		OnDateSelect: func(d time.Time) { picked = &d },
	})

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	r.SetViewState(ViewState{CurrentDate: day, View: ViewTimeGridDay})
	r.HandleKey(key("enter"))

	require.NotNil(t, picked)
	assert.Equal(t, day, *picked)
}

func TestAdaptersIgnoreCallbacksForUnknownEventIDs(t *testing.T) {
	fg := NewFullGridRenderer()
	var called bool
	fg.SetCallbacks(Callbacks{
		OnEventMove: func(EventChange) { called = true },
	})
	fg.onEventDrop("missing", time.Now(), time.Now(), "")
	assert.False(t, called)

	pl := NewPlannerRenderer()
	pl.SetCallbacks(Callbacks{
		OnEventMove: func(EventChange) { called = true },
	})
	pl.onMoved("missing", time.Now(), time.Now(), "")
	assert.False(t, called)
}

func TestNewRendererSelectsByName(t *testing.T) {
	assert.Equal(t, "planner", NewRenderer("planner").Name())
	assert.Equal(t, "fullgrid", NewRenderer("fullgrid").Name())
	assert.Equal(t, "fullgrid", NewRenderer("").Name())
}
