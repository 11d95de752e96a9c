package fullgrid

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

var anchor = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testEvent(id string, start time.Time) Event {
	return Event{ID: id, Title: "Task " + id, Start: start, End: start.Add(time.Hour)}
}

func TestChangeViewIgnoresUnknownIdentifiers(t *testing.T) {
	var notified int
	c := New(Options{
		InitialView: ViewTimeGridWeek,
		InitialDate: anchor,
		DatesSet:    func(string, time.Time) { notified++ },
	})

	c.ChangeView("listWeek", anchor)

	assert.Equal(t, ViewTimeGridWeek, c.CurrentView())
	assert.Zero(t, notified)
}

func TestNavigatePeriodsFollowView(t *testing.T) {
	cases := []struct {
		view string
		want time.Time
	}{
		{ViewDayGridMonth, anchor.AddDate(0, 1, 0)},
		{ViewTimeGridWeek, anchor.AddDate(0, 0, 7)},
		{ViewResourceTimelineWeek, anchor.AddDate(0, 0, 7)},
		{ViewTimeGridDay, anchor.AddDate(0, 0, 1)},
		{ViewResourceTimeGridDay, anchor.AddDate(0, 0, 1)},
	}

	for _, tc := range cases {
		c := New(Options{InitialView: tc.view, InitialDate: anchor})
		c.Navigate(1)
		assert.Equal(t, tc.want, c.CurrentDate(), "view %s", tc.view)
	}
}

func TestDatesSetFiresOnNavigationWithViewAndAnchor(t *testing.T) {
	var gotView string
	var gotAnchor time.Time
	c := New(Options{
		InitialView: ViewDayGridMonth,
		InitialDate: anchor,
		DatesSet: func(viewID string, a time.Time) {
			gotView = viewID
			gotAnchor = a
		},
	})

	c.HandleKey(key("]"))

	assert.Equal(t, ViewDayGridMonth, gotView)
	assert.Equal(t, anchor.AddDate(0, 1, 0), gotAnchor)
}

func TestMoveCommitsEventDrop(t *testing.T) {
	var dropped []any
	c := New(Options{
		InitialView: ViewTimeGridDay,
		InitialDate: anchor,
		EventDrop: func(id string, start, end time.Time, resourceID string) {
			dropped = []any{id, start, end, resourceID}
		},
	})
	c.SetEvents([]Event{testEvent("e1", anchor)})

	c.HandleKey(key("m"))
	c.HandleKey(key("right"))
	c.HandleKey(key("enter"))

	require.NotNil(t, dropped)
	assert.Equal(t, "e1", dropped[0])
	assert.Equal(t, anchor.Add(time.Hour), dropped[1])
	assert.Equal(t, anchor.Add(2*time.Hour), dropped[2])
	assert.Equal(t, "", dropped[3])
}

func TestMoveAcrossLanesReportsNewResource(t *testing.T) {
	var resourceID string
	c := New(Options{
		InitialView: ViewResourceTimeGridDay,
		InitialDate: anchor,
		EventDrop: func(_ string, _, _ time.Time, rid string) {
			resourceID = rid
		},
	})
	c.SetResources([]Resource{{ID: "s-1", Title: "Ada"}, {ID: "s-2", Title: "Kim"}})
	c.SetEvents([]Event{{ID: "e1", Title: "Task", Start: anchor, End: anchor.Add(time.Hour), ResourceID: "s-1"}})

	c.HandleKey(key("m"))
	c.HandleKey(key("down"))
	c.HandleKey(key("enter"))

	assert.Equal(t, "s-2", resourceID)
}

func TestResizeNeverShrinksBelowOneSlot(t *testing.T) {
	var newEnd time.Time
	c := New(Options{
		InitialView: ViewTimeGridDay,
		InitialDate: anchor,
		EventResize: func(_ string, end time.Time) { newEnd = end },
	})
	c.SetEvents([]Event{testEvent("e1", anchor)})

	c.HandleKey(key("r"))
	c.HandleKey(key("left"))
	c.HandleKey(key("left"))
	c.HandleKey(key("enter"))

	// A one-hour event cannot shrink further on an hourly grid.
	assert.Equal(t, anchor.Add(time.Hour), newEnd)
}

func TestEscCancelsDragWithoutCallback(t *testing.T) {
	var dropped bool
	c := New(Options{
		InitialView: ViewTimeGridDay,
		InitialDate: anchor,
		EventDrop:   func(string, time.Time, time.Time, string) { dropped = true },
	})
	c.SetEvents([]Event{testEvent("e1", anchor)})

	c.HandleKey(key("m"))
	c.HandleKey(key("right"))
	c.HandleKey(key("esc"))

	assert.False(t, dropped)
}

func TestEnterOnEventFiresEventClick(t *testing.T) {
	var clicked string
	c := New(Options{
		InitialView: ViewTimeGridDay,
		InitialDate: anchor,
		EventClick:  func(id string) { clicked = id },
	})
	c.SetEvents([]Event{testEvent("e1", anchor)})

	c.HandleKey(key("enter"))

	assert.Equal(t, "e1", clicked)
}

func TestEnterOnEmptyCellFiresDateClick(t *testing.T) {
	var picked time.Time
	c := New(Options{
		InitialView: ViewTimeGridDay,
		InitialDate: anchor,
		DateClick:   func(d time.Time) { picked = d },
	})

	c.HandleKey(key("enter"))

	assert.Equal(t, anchor, picked)
}

func TestMonthCellOverflowIndicator(t *testing.T) {
	c := New(Options{
		InitialView:  ViewDayGridMonth,
		InitialDate:  anchor,
		DayMaxEvents: 2,
	})
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	c.SetEvents([]Event{
		testEvent("e1", day.Add(8*time.Hour)),
		testEvent("e2", day.Add(10*time.Hour)),
		testEvent("e3", day.Add(12*time.Hour)),
	})

	assert.Contains(t, c.View(), "+1 more")
}

func TestResourceViewsDegradeWithoutResources(t *testing.T) {
	c := New(Options{InitialView: ViewResourceTimeGridDay, InitialDate: anchor})
	c.SetEvents([]Event{testEvent("e1", anchor)})

	out := c.View()
	assert.Contains(t, out, "Task e1")

	c.ChangeView(ViewResourceTimelineWeek, anchor)
	assert.NotPanics(t, func() { c.View() })
}

func TestResourceDayShowsLaneColumns(t *testing.T) {
	c := New(Options{InitialView: ViewResourceTimeGridDay, InitialDate: anchor})
	c.SetResources([]Resource{{ID: "s-1", Title: "Ada"}, {ID: "s-2", Title: "Kim"}})

	out := c.View()
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Kim")
}

func TestTabCyclesEventsInCell(t *testing.T) {
	var clicked string
	c := New(Options{
		InitialView: ViewTimeGridDay,
		InitialDate: anchor,
		EventClick:  func(id string) { clicked = id },
	})
	c.SetEvents([]Event{testEvent("e1", anchor), testEvent("e2", anchor)})

	c.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	c.HandleKey(key("enter"))

	assert.Equal(t, "e2", clicked)
}
