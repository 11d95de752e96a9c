package planner

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
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

var focus = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func appt(key string, begin time.Time) Appointment {
	return Appointment{Key: key, Subject: "Task " + key, Begin: begin, Finish: begin.Add(time.Hour)}
}

func TestShowIgnoresUnknownViews(t *testing.T) {
	var notified int
	b := New()
	b.SetHooks(Hooks{OnViewChanged: func(string, time.Time) { notified++ }})

	b.Show("Quarter", focus)

	view, _ := b.Focus()
	assert.Equal(t, Week, view)
	assert.Zero(t, notified)
}

func TestShowNotifiesViewAndFocusTogether(t *testing.T) {
	var gotView string
	var gotFocus time.Time
	b := New()
	b.SetHooks(Hooks{OnViewChanged: func(v string, f time.Time) {
		gotView = v
		gotFocus = f
	}})

	b.Show(Day, focus)

	assert.Equal(t, Day, gotView)
	assert.Equal(t, focus, gotFocus)
}

func TestPagePeriodsFollowView(t *testing.T) {
	cases := []struct {
		view string
		want time.Time
	}{
		{Month, focus.AddDate(0, 1, 0)},
		{Week, focus.AddDate(0, 0, 7)},
		{TimelineWeek, focus.AddDate(0, 0, 7)},
		{Day, focus.AddDate(0, 0, 1)},
		{ResourceDay, focus.AddDate(0, 0, 1)},
	}

	for _, tc := range cases {
		b := New()
		b.Show(tc.view, focus)
		b.Update(key("]"))
		_, got := b.Focus()
		assert.Equal(t, tc.want, got, "view %s", tc.view)
	}
}

func TestVisibleFiltersToSpan(t *testing.T) {
	b := New()
	b.Show(Day, focus)
	b.Load([]Appointment{
		appt("in", focus),
		appt("before", focus.AddDate(0, 0, -1)),
		appt("after", focus.AddDate(0, 0, 2)),
	})

	vis := b.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "in", vis[0].Key)
}

func TestVisibleFiltersToFocusedLaneWhenGrouped(t *testing.T) {
	b := New()
	b.Show(ResourceDay, focus)
	b.SetLanes([]Lane{{Key: "s-1", Label: "Ada"}, {Key: "s-2", Label: "Kim"}})

	a1 := appt("a1", focus)
	a1.LaneKey = "s-1"
	a2 := appt("a2", focus)
	a2.LaneKey = "s-2"
	b.Load([]Appointment{a1, a2})

	vis := b.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "a1", vis[0].Key)

	b.Update(key("right"))
	vis = b.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "a2", vis[0].Key)
}

func TestMoveCommitsInHalfHourSteps(t *testing.T) {
	var begin, finish time.Time
	b := New()
	b.SetHooks(Hooks{OnAppointmentMoved: func(_ string, bg, fn time.Time, _ string) {
		begin = bg
		finish = fn
	}})
	b.Show(Day, focus)
	b.Load([]Appointment{appt("a1", focus)})

	b.Update(key("m"))
	b.Update(key("right"))
	b.Update(key("enter"))

	assert.Equal(t, focus.Add(30*time.Minute), begin)
	assert.Equal(t, focus.Add(90*time.Minute), finish)
}

func TestMoveUsesDayStepsOnMonthView(t *testing.T) {
	var begin time.Time
	b := New()
	b.SetHooks(Hooks{OnAppointmentMoved: func(_ string, bg, _ time.Time, _ string) {
		begin = bg
	}})
	b.Show(Month, focus)
	b.Load([]Appointment{appt("a1", focus)})

	b.Update(key("m"))
	b.Update(key("right"))
	b.Update(key("enter"))

	assert.Equal(t, focus.AddDate(0, 0, 1), begin)
}

func TestResizeNeverShrinksBelowOneStep(t *testing.T) {
	var finish time.Time
	b := New()
	b.SetHooks(Hooks{OnAppointmentResized: func(_ string, fn time.Time) { finish = fn }})
	b.Show(Day, focus)
	b.Load([]Appointment{appt("a1", focus)})

	b.Update(key("r"))
	b.Update(key("left")) // 60 -> 30 minutes
	b.Update(key("left")) // refused, would hit zero
	b.Update(key("enter"))

	assert.Equal(t, focus.Add(30*time.Minute), finish)
}

func TestTabMovesAcrossLanesWhileMoving(t *testing.T) {
	var laneKey string
	b := New()
	b.SetHooks(Hooks{OnAppointmentMoved: func(_ string, _, _ time.Time, lk string) {
		laneKey = lk
	}})
	b.Show(ResourceDay, focus)
	b.SetLanes([]Lane{{Key: "s-1", Label: "Ada"}, {Key: "s-2", Label: "Kim"}})

	a := appt("a1", focus)
	a.LaneKey = "s-1"
	b.Load([]Appointment{a})

	b.Update(key("m"))
	b.Update(tea.KeyMsg{Type: tea.KeyTab})
	b.Update(key("enter"))

	assert.Equal(t, "s-2", laneKey)
}

func TestEscCancelsDrag(t *testing.T) {
	var moved bool
	b := New()
	b.SetHooks(Hooks{OnAppointmentMoved: func(string, time.Time, time.Time, string) { moved = true }})
	b.Show(Day, focus)
	b.Load([]Appointment{appt("a1", focus)})

	b.Update(key("m"))
	b.Update(key("right"))
	b.Update(key("esc"))

	assert.False(t, moved)
}

func TestActivateReportsAppointmentOrEmptyCell(t *testing.T) {
	var when time.Time
	var got string
	b := New()
	b.SetHooks(Hooks{OnCellActivate: func(w time.Time, k string) {
		when = w
		got = k
	}})
	b.Show(Day, focus)
	b.Load([]Appointment{appt("a1", focus)})

	b.Update(key("enter"))
	assert.Equal(t, "a1", got)
	assert.Equal(t, focus, when)

	b.Load(nil)
	b.Update(key("enter"))
	assert.Equal(t, "", got)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), when)
}

func TestRenderCapsRowsPerDay(t *testing.T) {
	b := New()
	b.Show(Day, focus)
	b.SetSlotCap(2)
	b.Load([]Appointment{
		appt("a1", focus),
		appt("a2", focus.Add(time.Hour)),
		appt("a3", focus.Add(2*time.Hour)),
	})

	out := b.Render()
	assert.Contains(t, out, "Task a1")
	assert.Contains(t, out, "Task a2")
	assert.NotContains(t, out, "Task a3")
	assert.Contains(t, out, "+1 more")
}

func TestRenderEmptyRange(t *testing.T) {
	b := New()
	b.Show(Day, focus)

	assert.Contains(t, b.Render(), "no scheduled items in this range")
}
