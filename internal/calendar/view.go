package calendar

import (
	"strings"
	"time"
)

// ViewName is the canonical, renderer-agnostic view granularity.
// Concrete renderers translate these to and from their own native view
// identifiers via fixed bidirectional tables.
type ViewName string

const (
	ViewMonth                ViewName = "month"
	ViewTimeGridWeek         ViewName = "timeGridWeek"
	ViewTimeGridDay          ViewName = "timeGridDay"
	ViewResourceDay          ViewName = "resourceDay"
	ViewResourceTimelineWeek ViewName = "resourceTimelineWeek"
)

// AllViews enumerates every supported canonical view name.
var AllViews = []ViewName{
	ViewMonth,
	ViewTimeGridWeek,
	ViewTimeGridDay,
	ViewResourceDay,
	ViewResourceTimelineWeek,
}

// timeGridPrefix marks the short-slot views that get compact chips.
const timeGridPrefix = "timeGrid"

// Density is the level of detail used to render an event chip.
type Density int

const (
	// DensityFull shows the title line plus a secondary row (time
	// range, assignee initials, notes count).
	DensityFull Density = iota

	// DensityDense shows a single truncated title line (month cells).
	DensityDense

	// DensityCompact shows title and time range on one line
	// (short time-grid slots).
	DensityCompact
)

// DensityFor selects the chip density for a view. Pure function of the
// view name: the month grid is dense, time-grid views are compact,
// everything else is full.
func DensityFor(view ViewName) Density {
	if view == ViewMonth {
		return DensityDense
	}
	if strings.HasPrefix(string(view), timeGridPrefix) {
		return DensityCompact
	}
	return DensityFull
}

// IsResourceView reports whether the view organizes events into
// resource lanes.
func IsResourceView(view ViewName) bool {
	return view == ViewResourceDay || view == ViewResourceTimelineWeek
}

// ViewState is the calendar position owned by the calling screen. The
// renderer is a controlled component that only reflects it.
type ViewState struct {
	CurrentDate time.Time
	View        ViewName
}

// Window returns the date window [start, end) the view makes visible.
// Month windows are padded to whole weeks, matching a month-grid
// layout that starts rows on Monday.
func (s ViewState) Window() (time.Time, time.Time) {
	d := s.CurrentDate
	switch s.View {
	case ViewMonth:
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		start := startOfWeek(first)
		last := first.AddDate(0, 1, 0)
		end := startOfWeek(last.AddDate(0, 0, 6))
		return start, end
	case ViewTimeGridWeek, ViewResourceTimelineWeek:
		start := startOfWeek(d)
		return start, start.AddDate(0, 0, 7)
	default:
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		return start, start.AddDate(0, 0, 1)
	}
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
