// Package fullgrid is a terminal calendar widget with a day-grid month
// layout, week/day time grids, and resource-grouped variants. Its API
// surface (view identifiers, option names, callback shapes) is its own;
// callers that want a widget-agnostic contract should wrap it in an
// adapter rather than depend on it directly.
package fullgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/theme"
)

// Native view identifiers.
const (
	ViewDayGridMonth         = "dayGridMonth"
	ViewTimeGridWeek         = "timeGridWeek"
	ViewTimeGridDay          = "timeGridDay"
	ViewResourceTimeGridDay  = "resourceTimeGridDay"
	ViewResourceTimelineWeek = "resourceTimelineWeek"
)

// Visible slot bounds for time-grid views.
const (
	firstSlotHour = 6
	lastSlotHour  = 22
)

// Event is the widget's native event input.
type Event struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	AllDay     bool
	ResourceID string
}

// Resource is a native resource lane.
type Resource struct {
	ID    string
	Title string
}

// ContentRenderer produces the rendered chip for an event. It receives
// the native view identifier so content can follow the active layout.
type ContentRenderer func(eventID string, viewID string, width int) string

// Options configures a Calendar. Nil callbacks are not invoked.
type Options struct {
	InitialView string
	InitialDate time.Time

	// DayMaxEvents caps the chips shown per cell; the remainder is
	// collapsed into a "+N more" indicator.
	DayMaxEvents int

	EventClick  func(eventID string)
	DateClick   func(date time.Time)
	EventDrop   func(eventID string, newStart, newEnd time.Time, resourceID string)
	EventResize func(eventID string, newEnd time.Time)

	// DatesSet fires after every navigation or view switch with the new
	// view identifier and anchor date.
	DatesSet func(viewID string, anchor time.Time)

	EventContent ContentRenderer
}

// interaction modes for the keyboard cursor.
type mode int

const (
	modeBrowse mode = iota
	modeMove
	modeResize
)

// Calendar is the widget state. It is driven entirely through method
// calls and HandleKey; it performs no I/O.
type Calendar struct {
	opts Options

	view   string
	anchor time.Time

	events       []Event
	resources    []Resource
	hasResources bool

	width  int
	height int

	cursor      time.Time
	cursorLane  int
	eventCursor int

	mode      mode
	dragID    string
	dragStart time.Time
	dragEnd   time.Time
	dragLane  int
}

// New creates a Calendar with the given options.
func New(opts Options) *Calendar {
	view := opts.InitialView
	if view == "" {
		view = ViewDayGridMonth
	}
	anchor := opts.InitialDate
	if anchor.IsZero() {
		anchor = time.Now()
	}
	if opts.DayMaxEvents <= 0 {
		opts.DayMaxEvents = 2
	}

	return &Calendar{
		opts:   opts,
		view:   view,
		anchor: anchor,
		cursor: anchor,
		width:  80,
		height: 24,
	}
}

// SetEvents replaces the displayed events.
func (c *Calendar) SetEvents(events []Event) {
	c.events = events
	if c.eventCursor >= len(c.cellEvents(c.cursor, c.cursorLane)) {
		c.eventCursor = 0
	}
}

// SetResources replaces the resource lanes. Passing nil (or an empty
// slice) disables resource grouping; resource views then degrade to
// their ungrouped equivalents.
func (c *Calendar) SetResources(resources []Resource) {
	c.resources = resources
	c.hasResources = len(resources) > 0
	if c.cursorLane >= len(resources) {
		c.cursorLane = 0
	}
}

// SetDayMaxEvents updates the per-cell chip cap.
func (c *Calendar) SetDayMaxEvents(n int) {
	if n > 0 {
		c.opts.DayMaxEvents = n
	}
}

// SetSize updates the render dimensions.
func (c *Calendar) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// CurrentView returns the active native view identifier.
func (c *Calendar) CurrentView() string { return c.view }

// CurrentDate returns the current anchor date.
func (c *Calendar) CurrentDate() time.Time { return c.anchor }

// ChangeView switches the active view and anchor, then notifies
// DatesSet. Unknown view identifiers are ignored.
func (c *Calendar) ChangeView(viewID string, date time.Time) {
	switch viewID {
	case ViewDayGridMonth, ViewTimeGridWeek, ViewTimeGridDay,
		ViewResourceTimeGridDay, ViewResourceTimelineWeek:
	default:
		return
	}

	c.view = viewID
	if !date.IsZero() {
		c.anchor = date
		c.cursor = date
	}
	c.notifyDatesSet()
}

// Navigate moves the anchor by delta periods (months for the month
// grid, weeks for week views, days otherwise) and notifies DatesSet.
func (c *Calendar) Navigate(delta int) {
	switch c.view {
	case ViewDayGridMonth:
		c.anchor = c.anchor.AddDate(0, delta, 0)
	case ViewTimeGridWeek, ViewResourceTimelineWeek:
		c.anchor = c.anchor.AddDate(0, 0, 7*delta)
	default:
		c.anchor = c.anchor.AddDate(0, 0, delta)
	}
	c.cursor = c.anchor
	c.notifyDatesSet()
}

// notifyDatesSet reports the view and anchor together; navigation and
// view switches share this single notification.
func (c *Calendar) notifyDatesSet() {
	if c.opts.DatesSet != nil {
		c.opts.DatesSet(c.view, c.anchor)
	}
}

// HandleKey processes one key press. Returns true when consumed.
func (c *Calendar) HandleKey(msg tea.KeyMsg) bool {
	if c.mode != modeBrowse {
		return c.handleDragKey(msg)
	}

	switch msg.String() {
	case "left", "h":
		c.moveCursor(0, -1)
	case "right", "l":
		c.moveCursor(0, 1)
	case "up", "k":
		c.moveCursor(-1, 0)
	case "down", "j":
		c.moveCursor(1, 0)
	case "tab":
		evs := c.cellEvents(c.cursor, c.cursorLane)
		if len(evs) > 0 {
			c.eventCursor = (c.eventCursor + 1) % len(evs)
		}
	case "enter":
		c.activateCell()
	case "m":
		c.beginDrag(modeMove)
	case "r":
		c.beginDrag(modeResize)
	case "[":
		c.Navigate(-1)
	case "]":
		c.Navigate(1)
	default:
		return false
	}
	return true
}

// handleDragKey adjusts an in-progress move/resize and commits or
// cancels it.
func (c *Calendar) handleDragKey(msg tea.KeyMsg) bool {
	step := c.slotStep()

	switch msg.String() {
	case "esc":
		c.mode = modeBrowse
		c.dragID = ""
	case "left", "h":
		if c.mode == modeMove {
			c.dragStart = c.dragStart.Add(-step)
			c.dragEnd = c.dragEnd.Add(-step)
		} else {
			c.shrinkDrag(step)
		}
	case "right", "l":
		if c.mode == modeMove {
			c.dragStart = c.dragStart.Add(step)
			c.dragEnd = c.dragEnd.Add(step)
		} else {
			c.dragEnd = c.dragEnd.Add(step)
		}
	case "up", "k":
		if c.mode == modeMove && c.laneView() && c.dragLane > 0 {
			c.dragLane--
		}
	case "down", "j":
		if c.mode == modeMove && c.laneView() && c.dragLane < len(c.resources)-1 {
			c.dragLane++
		}
	case "enter":
		c.commitDrag()
	default:
		return false
	}
	return true
}

// beginDrag starts a move or resize on the selected event.
func (c *Calendar) beginDrag(m mode) {
	evs := c.cellEvents(c.cursor, c.cursorLane)
	if len(evs) == 0 {
		return
	}
	ev := evs[c.eventCursor%len(evs)]

	c.mode = m
	c.dragID = ev.ID
	c.dragStart = ev.Start
	c.dragEnd = ev.End
	c.dragLane = c.laneIndex(ev.ResourceID)
}

// commitDrag fires EventDrop or EventResize with the proposed state.
func (c *Calendar) commitDrag() {
	id := c.dragID
	m := c.mode
	c.mode = modeBrowse
	c.dragID = ""

	if id == "" {
		return
	}

	if m == modeMove && c.opts.EventDrop != nil {
		resourceID := ""
		if c.hasResources && c.dragLane >= 0 && c.dragLane < len(c.resources) {
			resourceID = c.resources[c.dragLane].ID
		}
		c.opts.EventDrop(id, c.dragStart, c.dragEnd, resourceID)
	}
	if m == modeResize && c.opts.EventResize != nil {
		c.opts.EventResize(id, c.dragEnd)
	}
}

// shrinkDrag shortens the drag interval, never below one slot.
func (c *Calendar) shrinkDrag(step time.Duration) {
	next := c.dragEnd.Add(-step)
	if next.After(c.dragStart) {
		c.dragEnd = next
	}
}

// slotStep is the drag granularity: whole days on the month grid and
// timeline, hours on time grids.
func (c *Calendar) slotStep() time.Duration {
	switch c.view {
	case ViewDayGridMonth, ViewResourceTimelineWeek:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// laneView reports whether lane movement is meaningful in this view.
func (c *Calendar) laneView() bool {
	return c.hasResources &&
		(c.view == ViewResourceTimeGridDay || c.view == ViewResourceTimelineWeek)
}

// activateCell fires EventClick when an event is selected, DateClick
// otherwise.
func (c *Calendar) activateCell() {
	evs := c.cellEvents(c.cursor, c.cursorLane)
	if len(evs) > 0 {
		if c.opts.EventClick != nil {
			c.opts.EventClick(evs[c.eventCursor%len(evs)].ID)
		}
		return
	}
	if c.opts.DateClick != nil {
		c.opts.DateClick(c.cursor)
	}
}

// moveCursor shifts the cell cursor. Rows mean weeks on the month grid,
// hours on time grids, and lanes on the timeline.
func (c *Calendar) moveCursor(rows, cols int) {
	c.eventCursor = 0

	switch c.view {
	case ViewDayGridMonth:
		c.cursor = c.cursor.AddDate(0, 0, cols+7*rows)
	case ViewTimeGridWeek:
		c.cursor = c.cursor.AddDate(0, 0, cols).Add(time.Duration(rows) * time.Hour)
	case ViewTimeGridDay:
		c.cursor = c.cursor.Add(time.Duration(rows) * time.Hour)
	case ViewResourceTimeGridDay:
		c.cursor = c.cursor.Add(time.Duration(rows) * time.Hour)
		c.shiftLane(cols)
	case ViewResourceTimelineWeek:
		c.cursor = c.cursor.AddDate(0, 0, cols)
		c.shiftLane(rows)
	}
}

// shiftLane moves the resource lane cursor within bounds.
func (c *Calendar) shiftLane(delta int) {
	if !c.hasResources {
		return
	}
	lane := c.cursorLane + delta
	if lane < 0 {
		lane = 0
	}
	if lane >= len(c.resources) {
		lane = len(c.resources) - 1
	}
	c.cursorLane = lane
}

// laneIndex finds a resource's lane position, or -1.
func (c *Calendar) laneIndex(resourceID string) int {
	for i, r := range c.resources {
		if r.ID == resourceID {
			return i
		}
	}
	return -1
}

// cellEvents returns the events that fall into the cell at date (and
// lane, for resource views), ordered as supplied.
func (c *Calendar) cellEvents(date time.Time, lane int) []Event {
	var out []Event
	for _, ev := range c.events {
		if !sameCell(ev.Start, date, c.timeGrid()) {
			continue
		}
		if c.laneView() {
			if lane < 0 || lane >= len(c.resources) {
				continue
			}
			if ev.ResourceID != c.resources[lane].ID {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// timeGrid reports whether cells are hour slots rather than whole days.
func (c *Calendar) timeGrid() bool {
	switch c.view {
	case ViewTimeGridWeek, ViewTimeGridDay, ViewResourceTimeGridDay:
		return true
	}
	return false
}

// sameCell reports whether t falls into the cell anchored at cell.
func sameCell(t, cell time.Time, hourly bool) bool {
	if t.Year() != cell.Year() || t.YearDay() != cell.YearDay() {
		return false
	}
	if hourly {
		return t.Hour() == cell.Hour()
	}
	return true
}

// renderContent invokes the content renderer, falling back to the raw
// title when none is configured.
func (c *Calendar) renderContent(ev Event, width int) string {
	if c.opts.EventContent != nil {
		return c.opts.EventContent(ev.ID, c.view, width)
	}
	if len(ev.Title) > width {
		return ev.Title[:width]
	}
	return ev.Title
}

// View renders the calendar for the active view.
func (c *Calendar) View() string {
	switch c.view {
	case ViewDayGridMonth:
		return c.viewMonth()
	case ViewTimeGridWeek:
		return c.viewTimeGrid(7)
	case ViewTimeGridDay:
		return c.viewTimeGrid(1)
	case ViewResourceTimeGridDay:
		if c.hasResources {
			return c.viewResourceDay()
		}
		return c.viewTimeGrid(1)
	case ViewResourceTimelineWeek:
		if c.hasResources {
			return c.viewTimeline()
		}
		return c.viewTimeGrid(7)
	default:
		return c.viewTimeGrid(1)
	}
}

var (
	gridHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	dayNumStyle     = lipgloss.NewStyle().Foreground(theme.ColorGray)
	overflowStyle   = lipgloss.NewStyle().Italic(true).Foreground(theme.ColorGray)
	modeStyle       = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow)
)

// viewMonth renders the day-grid month layout.
func (c *Calendar) viewMonth() string {
	first := time.Date(c.anchor.Year(), c.anchor.Month(), 1, 0, 0, 0, 0, c.anchor.Location())
	start := startOfWeek(first)

	colWidth := c.width / 7
	if colWidth < 8 {
		colWidth = 8
	}

	var b strings.Builder
	b.WriteString(gridHeaderStyle.Render(c.anchor.Format("January 2006")))
	b.WriteString(c.modeSuffix())
	b.WriteString("\n")

	for d := 0; d < 7; d++ {
		day := start.AddDate(0, 0, d)
		b.WriteString(pad(day.Format("Mon"), colWidth))
	}
	b.WriteString("\n")

	for week := 0; week < 6; week++ {
		weekStart := start.AddDate(0, 0, 7*week)
		if weekStart.Month() != c.anchor.Month() && week > 0 &&
			weekStart.After(first.AddDate(0, 1, -1)) {
			break
		}
		b.WriteString(c.renderWeekRow(weekStart, colWidth))
	}

	return b.String()
}

// renderWeekRow renders one week of month cells side by side.
func (c *Calendar) renderWeekRow(weekStart time.Time, colWidth int) string {
	cells := make([]string, 7)
	for d := 0; d < 7; d++ {
		day := weekStart.AddDate(0, 0, d)
		cells[d] = c.renderDayCell(day, colWidth)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n"
}

// renderDayCell renders one month cell: day number, up to DayMaxEvents
// chips, and an overflow indicator.
func (c *Calendar) renderDayCell(day time.Time, colWidth int) string {
	lines := []string{}

	num := day.Format("2")
	if sameCell(day, c.cursor, false) {
		num = theme.SelectedCellStyle.Render(num)
	} else {
		num = dayNumStyle.Render(num)
	}
	lines = append(lines, num)

	evs := c.cellEvents(day, c.cursorLane)
	max := c.opts.DayMaxEvents
	for i, ev := range evs {
		if i == max {
			break
		}
		lines = append(lines, c.renderContent(ev, colWidth-1))
	}
	if len(evs) > max {
		lines = append(lines, overflowStyle.Render(fmt.Sprintf("+%d more", len(evs)-max)))
	}

	return lipgloss.NewStyle().Width(colWidth).Render(strings.Join(lines, "\n"))
}

// viewTimeGrid renders hour rows across days columns (1 for the day
// view, 7 for the week view).
func (c *Calendar) viewTimeGrid(days int) string {
	start := c.anchor
	if days == 7 {
		start = startOfWeek(c.anchor)
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	colWidth := (c.width - 6) / days
	if colWidth < 10 {
		colWidth = 10
	}

	var b strings.Builder
	b.WriteString(gridHeaderStyle.Render(c.timeGridTitle(start, days)))
	b.WriteString(c.modeSuffix())
	b.WriteString("\n")

	if days > 1 {
		b.WriteString(pad("", 6))
		for d := 0; d < days; d++ {
			b.WriteString(pad(start.AddDate(0, 0, d).Format("Mon 02"), colWidth))
		}
		b.WriteString("\n")
	}

	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		b.WriteString(pad(fmt.Sprintf("%02d:00", hour), 6))
		cells := make([]string, days)
		for d := 0; d < days; d++ {
			slot := start.AddDate(0, 0, d).Add(time.Duration(hour) * time.Hour)
			cells[d] = c.renderSlotCell(slot, colWidth)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return b.String()
}

// timeGridTitle formats the heading for a time-grid window.
func (c *Calendar) timeGridTitle(start time.Time, days int) string {
	if days == 1 {
		return start.Format("Monday, Jan 2 2006")
	}
	end := start.AddDate(0, 0, days-1)
	return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
}

// renderSlotCell renders one hour slot: at most DayMaxEvents chips plus
// the overflow indicator.
func (c *Calendar) renderSlotCell(slot time.Time, colWidth int) string {
	evs := c.cellEvents(slot, c.cursorLane)

	lines := []string{}
	max := c.opts.DayMaxEvents
	for i, ev := range evs {
		if i == max {
			break
		}
		lines = append(lines, c.renderContent(ev, colWidth-1))
	}
	if len(evs) > max {
		lines = append(lines, overflowStyle.Render(fmt.Sprintf("+%d", len(evs)-max)))
	}

	content := strings.Join(lines, "\n")
	if sameCell(slot, c.cursor, true) && slot.Hour() == c.cursor.Hour() {
		if content == "" {
			content = theme.SelectedCellStyle.Render("·")
		} else {
			content = theme.SelectedCellStyle.Render("▸") + content
		}
	}
	return lipgloss.NewStyle().Width(colWidth).Render(content)
}

// viewResourceDay renders one column per resource for the anchor day.
func (c *Calendar) viewResourceDay() string {
	day := time.Date(c.anchor.Year(), c.anchor.Month(), c.anchor.Day(), 0, 0, 0, 0, c.anchor.Location())
	colWidth := (c.width - 6) / len(c.resources)
	if colWidth < 10 {
		colWidth = 10
	}

	var b strings.Builder
	b.WriteString(gridHeaderStyle.Render(day.Format("Monday, Jan 2 2006")))
	b.WriteString(c.modeSuffix())
	b.WriteString("\n")

	b.WriteString(pad("", 6))
	for i, r := range c.resources {
		title := r.Title
		if i == c.cursorLane {
			title = theme.SelectedCellStyle.Render(title)
		}
		b.WriteString(pad(title, colWidth))
	}
	b.WriteString("\n")

	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		b.WriteString(pad(fmt.Sprintf("%02d:00", hour), 6))
		slot := day.Add(time.Duration(hour) * time.Hour)
		cells := make([]string, len(c.resources))
		for lane := range c.resources {
			cells[lane] = c.renderLaneCell(slot, lane, colWidth)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLaneCell renders a slot within a specific resource lane.
func (c *Calendar) renderLaneCell(slot time.Time, lane int, colWidth int) string {
	evs := c.laneEvents(slot, lane, true)

	lines := []string{}
	max := c.opts.DayMaxEvents
	for i, ev := range evs {
		if i == max {
			break
		}
		lines = append(lines, c.renderContent(ev, colWidth-1))
	}
	if len(evs) > max {
		lines = append(lines, overflowStyle.Render(fmt.Sprintf("+%d", len(evs)-max)))
	}

	content := strings.Join(lines, "\n")
	if lane == c.cursorLane && sameCell(slot, c.cursor, true) {
		if content == "" {
			content = theme.SelectedCellStyle.Render("·")
		} else {
			content = theme.SelectedCellStyle.Render("▸") + content
		}
	}
	return lipgloss.NewStyle().Width(colWidth).Render(content)
}

// viewTimeline renders one row per resource across the week's days.
func (c *Calendar) viewTimeline() string {
	start := startOfWeek(c.anchor)
	labelWidth := 14
	colWidth := (c.width - labelWidth) / 7
	if colWidth < 10 {
		colWidth = 10
	}

	var b strings.Builder
	end := start.AddDate(0, 0, 6)
	b.WriteString(gridHeaderStyle.Render(start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")))
	b.WriteString(c.modeSuffix())
	b.WriteString("\n")

	b.WriteString(pad("", labelWidth))
	for d := 0; d < 7; d++ {
		b.WriteString(pad(start.AddDate(0, 0, d).Format("Mon 02"), colWidth))
	}
	b.WriteString("\n")

	for lane, r := range c.resources {
		label := r.Title
		if lane == c.cursorLane {
			label = theme.SelectedCellStyle.Render(label)
		}
		b.WriteString(pad(label, labelWidth))

		cells := make([]string, 7)
		for d := 0; d < 7; d++ {
			day := start.AddDate(0, 0, d)
			cells[d] = c.renderTimelineCell(day, lane, colWidth)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTimelineCell renders a day cell within a resource row.
func (c *Calendar) renderTimelineCell(day time.Time, lane int, colWidth int) string {
	evs := c.laneEvents(day, lane, false)

	lines := []string{}
	max := c.opts.DayMaxEvents
	for i, ev := range evs {
		if i == max {
			break
		}
		lines = append(lines, c.renderContent(ev, colWidth-1))
	}
	if len(evs) > max {
		lines = append(lines, overflowStyle.Render(fmt.Sprintf("+%d", len(evs)-max)))
	}

	content := strings.Join(lines, "\n")
	if lane == c.cursorLane && sameCell(day, c.cursor, false) {
		if content == "" {
			content = theme.SelectedCellStyle.Render("·")
		} else {
			content = theme.SelectedCellStyle.Render("▸") + content
		}
	}
	return lipgloss.NewStyle().Width(colWidth).Render(content)
}

// laneEvents returns the events in a slot/day for one resource lane.
func (c *Calendar) laneEvents(cell time.Time, lane int, hourly bool) []Event {
	if lane < 0 || lane >= len(c.resources) {
		return nil
	}
	laneID := c.resources[lane].ID

	var out []Event
	for _, ev := range c.events {
		if ev.ResourceID != laneID {
			continue
		}
		if sameCell(ev.Start, cell, hourly) {
			out = append(out, ev)
		}
	}
	return out
}

// modeSuffix annotates the heading while a move/resize is in progress.
func (c *Calendar) modeSuffix() string {
	switch c.mode {
	case modeMove:
		return "  " + modeStyle.Render("[moving "+c.dragStart.Format("Jan 2 15:04")+"]")
	case modeResize:
		return "  " + modeStyle.Render("[resizing to "+c.dragEnd.Format("15:04")+"]")
	default:
		return ""
	}
}

// pad right-pads s to width cells, truncating when longer.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-w)
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
