// Package planner is an agenda-board scheduling widget. Unlike a cell
// grid it renders each visible day as a section with its appointments
// listed beneath, which keeps narrow terminals readable. Its native
// vocabulary (appointments, lanes, hooks) is its own; it is meant to be
// wrapped by an adapter.
package planner

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/theme"
)

// Native view names.
const (
	Month        = "Month"
	Week         = "Week"
	Day          = "Day"
	ResourceDay  = "ResourceDay"
	TimelineWeek = "TimelineWeek"
)

// Appointment is the widget's native scheduling item.
type Appointment struct {
	Key     string
	Subject string
	Begin   time.Time
	Finish  time.Time
	AllDay  bool
	LaneKey string
}

// Lane is a grouping track (a station, a person, a room).
type Lane struct {
	Key   string
	Label string
}

// Hooks are the widget's native notifications. Nil hooks are skipped.
type Hooks struct {
	// OnCellActivate fires on enter: key is the focused appointment's
	// key, or empty when an empty slot was activated.
	OnCellActivate func(when time.Time, key string)

	OnAppointmentMoved   func(key string, begin, finish time.Time, laneKey string)
	OnAppointmentResized func(key string, finish time.Time)

	// OnViewChanged fires after Show and after page navigation, always
	// with the view name and focus date together.
	OnViewChanged func(view string, focus time.Time)
}

// CellRenderer customizes appointment rows; the default shows the bare
// subject.
type CellRenderer func(key string, width int) string

// Board is the widget state.
type Board struct {
	hooks    Hooks
	renderer CellRenderer

	view  string
	focus time.Time

	appts []Appointment
	lanes []Lane

	width   int
	height  int
	slotCap int

	row      int
	pending  string
	resizing bool
	pBegin   time.Time
	pFinish  time.Time
	pLane    int
}

// New creates an empty Board showing the current week.
func New() *Board {
	return &Board{
		view:    Week,
		focus:   time.Now(),
		width:   80,
		height:  24,
		slotCap: 3,
	}
}

// SetHooks installs the notification hooks.
func (b *Board) SetHooks(h Hooks) { b.hooks = h }

// SetCellRenderer installs a custom appointment row renderer.
func (b *Board) SetCellRenderer(r CellRenderer) { b.renderer = r }

// Load replaces the appointment list.
func (b *Board) Load(appts []Appointment) {
	b.appts = appts
	if b.row >= len(b.visible()) {
		b.row = 0
	}
}

// SetLanes replaces the lane list; nil disables lane grouping and the
// resource views fall back to their flat equivalents.
func (b *Board) SetLanes(lanes []Lane) {
	b.lanes = lanes
	if b.pLane >= len(lanes) {
		b.pLane = 0
	}
}

// SetSlotCap caps appointments listed per day section.
func (b *Board) SetSlotCap(n int) {
	if n > 0 {
		b.slotCap = n
	}
}

// Resize updates the render dimensions.
func (b *Board) Resize(width, height int) {
	b.width = width
	b.height = height
}

// Show switches the view and focus date. Unknown views are ignored.
func (b *Board) Show(view string, focus time.Time) {
	switch view {
	case Month, Week, Day, ResourceDay, TimelineWeek:
	default:
		return
	}
	b.view = view
	if !focus.IsZero() {
		b.focus = focus
	}
	b.row = 0
	b.changed()
}

// Focus returns the current view name and focus date.
func (b *Board) Focus() (string, time.Time) { return b.view, b.focus }

func (b *Board) changed() {
	if b.hooks.OnViewChanged != nil {
		b.hooks.OnViewChanged(b.view, b.focus)
	}
}

// span returns the visible [from, to) date range.
func (b *Board) span() (time.Time, time.Time) {
	d := time.Date(b.focus.Year(), b.focus.Month(), b.focus.Day(), 0, 0, 0, 0, b.focus.Location())
	switch b.view {
	case Month:
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		return first, first.AddDate(0, 1, 0)
	case Week, TimelineWeek:
		start := mondayOf(d)
		return start, start.AddDate(0, 0, 7)
	default:
		return d, d.AddDate(0, 0, 1)
	}
}

// visible returns the appointments inside the current span, filtered to
// the focused lane when lanes apply, in input order.
func (b *Board) visible() []Appointment {
	from, to := b.span()
	grouped := b.grouped()

	var out []Appointment
	for _, a := range b.appts {
		if a.Begin.Before(from) || !a.Begin.Before(to) {
			continue
		}
		if grouped && len(b.lanes) > 0 && a.LaneKey != b.lanes[b.pLane].Key {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (b *Board) grouped() bool {
	return len(b.lanes) > 0 && (b.view == ResourceDay || b.view == TimelineWeek)
}

// Update processes one key press; returns true when consumed.
func (b *Board) Update(msg tea.KeyMsg) bool {
	if b.pending != "" {
		return b.updateDrag(msg)
	}

	vis := b.visible()
	switch msg.String() {
	case "up", "k":
		if b.row > 0 {
			b.row--
		}
	case "down", "j":
		if b.row < len(vis)-1 {
			b.row++
		}
	case "left", "h":
		if b.grouped() && b.pLane > 0 {
			b.pLane--
			b.row = 0
		}
	case "right", "l":
		if b.grouped() && b.pLane < len(b.lanes)-1 {
			b.pLane++
			b.row = 0
		}
	case "[":
		b.page(-1)
	case "]":
		b.page(1)
	case "enter":
		b.activate(vis)
	case "m":
		b.beginDrag(vis, false)
	case "r":
		b.beginDrag(vis, true)
	default:
		return false
	}
	return true
}

// page moves the focus by one view period and notifies OnViewChanged.
func (b *Board) page(delta int) {
	switch b.view {
	case Month:
		b.focus = b.focus.AddDate(0, delta, 0)
	case Week, TimelineWeek:
		b.focus = b.focus.AddDate(0, 0, 7*delta)
	default:
		b.focus = b.focus.AddDate(0, 0, delta)
	}
	b.row = 0
	b.changed()
}

func (b *Board) activate(vis []Appointment) {
	if b.hooks.OnCellActivate == nil {
		return
	}
	if len(vis) == 0 {
		from, _ := b.span()
		b.hooks.OnCellActivate(from, "")
		return
	}
	a := vis[b.row%len(vis)]
	b.hooks.OnCellActivate(a.Begin, a.Key)
}

func (b *Board) beginDrag(vis []Appointment, resizing bool) {
	if len(vis) == 0 {
		return
	}
	a := vis[b.row%len(vis)]
	b.pending = a.Key
	b.resizing = resizing
	b.pBegin = a.Begin
	b.pFinish = a.Finish
	b.pLane = b.laneOf(a.LaneKey)
}

func (b *Board) laneOf(key string) int {
	for i, l := range b.lanes {
		if l.Key == key {
			return i
		}
	}
	return 0
}

// step is the drag granularity: 30 minutes on day/week views, a day on
// month and timeline views.
func (b *Board) step() time.Duration {
	switch b.view {
	case Month, TimelineWeek:
		return 24 * time.Hour
	default:
		return 30 * time.Minute
	}
}

func (b *Board) updateDrag(msg tea.KeyMsg) bool {
	step := b.step()
	switch msg.String() {
	case "esc":
		b.pending = ""
	case "left", "h", "up", "k":
		if b.resizing {
			if f := b.pFinish.Add(-step); f.After(b.pBegin) {
				b.pFinish = f
			}
		} else {
			b.pBegin = b.pBegin.Add(-step)
			b.pFinish = b.pFinish.Add(-step)
		}
	case "right", "l", "down", "j":
		if b.resizing {
			b.pFinish = b.pFinish.Add(step)
		} else {
			b.pBegin = b.pBegin.Add(step)
			b.pFinish = b.pFinish.Add(step)
		}
	case "tab":
		if b.grouped() && len(b.lanes) > 0 && !b.resizing {
			b.pLane = (b.pLane + 1) % len(b.lanes)
		}
	case "enter":
		b.commitDrag()
	default:
		return false
	}
	return true
}

func (b *Board) commitDrag() {
	key := b.pending
	b.pending = ""
	if key == "" {
		return
	}

	if b.resizing {
		if b.hooks.OnAppointmentResized != nil {
			b.hooks.OnAppointmentResized(key, b.pFinish)
		}
		return
	}

	laneKey := ""
	if len(b.lanes) > 0 && b.pLane < len(b.lanes) {
		laneKey = b.lanes[b.pLane].Key
	}
	if b.hooks.OnAppointmentMoved != nil {
		b.hooks.OnAppointmentMoved(key, b.pBegin, b.pFinish, laneKey)
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	dayHeadStyle    = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorTeal)
	laneHeadStyle   = lipgloss.NewStyle().Underline(true).Foreground(theme.ColorWhite)
	moreStyle       = lipgloss.NewStyle().Italic(true).Foreground(theme.ColorGray)
	dragStyle       = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow)
)

// Render draws the board.
func (b *Board) Render() string {
	from, to := b.span()
	vis := b.visible()

	var out strings.Builder
	out.WriteString(boardTitleStyle.Render(b.title(from, to)))
	if b.pending != "" {
		verb := "moving to"
		stamp := b.pBegin.Format("Jan 2 15:04")
		if b.resizing {
			verb = "resizing to"
			stamp = b.pFinish.Format("15:04")
		}
		out.WriteString("  " + dragStyle.Render("["+verb+" "+stamp+"]"))
	}
	out.WriteString("\n")

	if b.grouped() {
		out.WriteString(b.laneHeader())
	}

	idx := 0
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		section := b.renderDay(day, vis, &idx)
		if section != "" {
			out.WriteString(section)
		}
	}

	if len(vis) == 0 {
		out.WriteString(moreStyle.Render("no scheduled items in this range") + "\n")
	}

	return out.String()
}

func (b *Board) title(from, to time.Time) string {
	switch b.view {
	case Month:
		return b.focus.Format("January 2006")
	case Day, ResourceDay:
		return from.Format("Monday, Jan 2 2006")
	default:
		return from.Format("Jan 2") + " – " + to.AddDate(0, 0, -1).Format("Jan 2, 2006")
	}
}

func (b *Board) laneHeader() string {
	parts := make([]string, len(b.lanes))
	for i, l := range b.lanes {
		label := l.Label
		if i == b.pLane {
			label = theme.SelectedCellStyle.Render(label)
		}
		parts[i] = label
	}
	return laneHeadStyle.Render("lane: ") + strings.Join(parts, "  ") + "\n"
}

// renderDay renders one day section, capping rows at slotCap. idx walks
// the flat visible list so row highlighting lines up with the cursor.
func (b *Board) renderDay(day time.Time, vis []Appointment, idx *int) string {
	var rows []string
	shown := 0
	total := 0

	for _, a := range vis {
		if !sameDay(a.Begin, day) {
			continue
		}
		total++
		if shown >= b.slotCap {
			*idx++
			continue
		}
		rows = append(rows, b.renderRow(a, *idx == b.row))
		*idx++
		shown++
	}

	if total == 0 {
		return ""
	}

	var sec strings.Builder
	sec.WriteString(dayHeadStyle.Render(day.Format("Mon Jan 2")) + "\n")
	sec.WriteString(strings.Join(rows, "\n") + "\n")
	if total > shown {
		sec.WriteString(moreStyle.Render(fmt.Sprintf("  +%d more", total-shown)) + "\n")
	}
	return sec.String()
}

func (b *Board) renderRow(a Appointment, focused bool) string {
	width := b.width - 4
	if width < 10 {
		width = 10
	}

	var body string
	if b.renderer != nil {
		body = b.renderer(a.Key, width)
	} else {
		body = a.Subject
	}

	prefix := "  "
	if focused {
		prefix = theme.SelectedItemStyle.Render("") + " "
	}
	return prefix + body
}

func sameDay(t, day time.Time) bool {
	return t.Year() == day.Year() && t.YearDay() == day.YearDay()
}

// mondayOf returns midnight of the Monday on or before t.
func mondayOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
}
