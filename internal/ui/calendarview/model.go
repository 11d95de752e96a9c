// Package calendarview is the schedule screen: a calendar renderer
// showing the merged cleaning and recipe feeds, with keyboard
// rescheduling and iCalendar export.
package calendarview

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/calendar"
	"github.com/prepline/prepline/internal/export"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/theme"
)

// WindowChangedMsg tells the owner that the visible date window moved
// and the poller should refetch for it.
type WindowChangedMsg struct {
	From time.Time
	To   time.Time
}

// RescheduledMsg reports a persisted (or failed) move/resize.
type RescheduledMsg struct {
	EventID string
	Err     error
}

// ExportedMsg reports the outcome of an .ics export.
type ExportedMsg struct {
	Path string
	Err  error
}

// interactions collects callback payloads on the heap so the renderer's
// callbacks survive Bubble Tea model copies. Drained after every key.
type interactions struct {
	selected  *model.Event
	moved     *calendar.EventChange
	resized   *calendar.EventChange
	dateSel   *time.Time
	rangeMove *calendar.RangeChange
}

func (s *interactions) reset() {
	*s = interactions{}
}

// Model is the Bubble Tea model for the calendar screen.
type Model struct {
	client   *api.Client
	renderer calendar.Renderer
	sink     *interactions

	state  calendar.ViewState
	events []model.Event

	selected *model.Event
	notice   string
	err      error

	width  int
	height int
}

// New creates the calendar screen around a renderer implementation.
func New(client *api.Client, renderer calendar.Renderer, width, height int) Model {
	sink := &interactions{}
	renderer.SetCallbacks(calendar.Callbacks{
		OnEventSelect: func(ev model.Event) { sink.selected = &ev },
		OnEventMove:   func(ch calendar.EventChange) { sink.moved = &ch },
		OnEventResize: func(ch calendar.EventChange) { sink.resized = &ch },
		OnDateSelect:  func(d time.Time) { sink.dateSel = &d },
		OnRangeChange: func(rc calendar.RangeChange) { sink.rangeMove = &rc },
	})

	state := calendar.ViewState{
		CurrentDate: time.Now(),
		View:        calendar.ViewTimeGridWeek,
	}
	renderer.SetViewState(state)
	renderer.SetSize(width, height)

	return Model{
		client:   client,
		renderer: renderer,
		sink:     sink,
		state:    state,
		width:    width,
		height:   height,
	}
}

// Init reports the initial window so the poller starts aligned.
func (m Model) Init() tea.Cmd {
	return m.windowChanged()
}

// SetEvents replaces the displayed events with a fresh fetch result.
func (m *Model) SetEvents(events []model.Event) {
	m.events = events
	m.renderer.SetEvents(events)
}

// SetResources updates the staff lanes used by resource-grouped views.
func (m *Model) SetResources(resources []model.Resource) {
	m.renderer.SetResources(resources)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.renderer.SetSize(width, height-4)
}

// ViewState exposes the current calendar position.
func (m Model) ViewState() calendar.ViewState { return m.state }

// Update handles messages for the calendar screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RescheduledMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.notice = "rescheduled"
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.notice = "exported to " + msg.Path
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "v":
		return m.cycleView()
	case "x":
		return m, m.exportCmd()
	case "esc":
		if m.selected != nil {
			m.selected = nil
			return m, nil
		}
	}

	m.sink.reset()
	if !m.renderer.HandleKey(msg) {
		return m, nil
	}
	return m.drainInteractions()
}

// drainInteractions converts callback payloads captured during
// HandleKey into state changes and commands.
func (m Model) drainInteractions() (Model, tea.Cmd) {
	var cmds []tea.Cmd

	if ev := m.sink.selected; ev != nil {
		m.selected = ev
	}
	if d := m.sink.dateSel; d != nil {
		m.selected = nil
		m.state.CurrentDate = *d
	}
	if rc := m.sink.rangeMove; rc != nil {
		m.state = calendar.ViewState{CurrentDate: rc.Date, View: rc.View}
		cmds = append(cmds, m.windowChanged())
	}
	if ch := m.sink.moved; ch != nil {
		cmds = append(cmds, m.rescheduleCmd(*ch))
	}
	if ch := m.sink.resized; ch != nil {
		cmds = append(cmds, m.rescheduleCmd(*ch))
	}

	m.sink.reset()
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// cycleView advances to the next canonical view.
func (m Model) cycleView() (Model, tea.Cmd) {
	for i, v := range calendar.AllViews {
		if v == m.state.View {
			m.state.View = calendar.AllViews[(i+1)%len(calendar.AllViews)]
			break
		}
	}
	m.renderer.SetViewState(m.state)
	return m, m.windowChanged()
}

// windowChanged emits the visible window for the poller.
func (m Model) windowChanged() tea.Cmd {
	from, to := m.state.Window()
	return func() tea.Msg {
		return WindowChangedMsg{From: from, To: to}
	}
}

// rescheduleCmd persists a move or resize through the feed-specific
// endpoint. The event list is not mutated here; the owner refreshes it
// after the reschedule lands, so a failure visually reverts the event.
func (m Model) rescheduleCmd(ch calendar.EventChange) tea.Cmd {
	client := m.client
	ev := ch.Old

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		switch ev.Kind {
		case model.KindCleaning:
			err = client.RescheduleCleaningTask(ctx, ev.ID, ch.NewStart, ch.NewEnd, ch.NewResourceID)
		case model.KindRecipe:
			err = client.RescheduleProductionRun(ctx, ev.ID, ch.NewStart, ch.NewEnd, ch.NewResourceID)
		default:
			err = errors.New("events of unknown type cannot be rescheduled")
		}
		return RescheduledMsg{EventID: ev.ID, Err: err}
	}
}

// exportCmd writes the currently visible window to an .ics file.
func (m Model) exportCmd() tea.Cmd {
	from, to := m.state.Window()

	var visible []model.Event
	for _, ev := range m.events {
		if !ev.Start.Before(from) && ev.Start.Before(to) {
			visible = append(visible, ev)
		}
	}

	path := export.DefaultPath(time.Now())
	return func() tea.Msg {
		err := export.WriteFile(path, visible)
		return ExportedMsg{Path: path, Err: err}
	}
}

var detailTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

// View renders the calendar and, when an event is selected, its detail
// panel underneath.
func (m Model) View() string {
	out := m.renderer.View()

	if m.selected != nil {
		out += "\n" + theme.PanelStyle.Width(m.width-2).Render(m.detail(*m.selected))
	}
	if m.notice != "" {
		out += "\n" + theme.NoticeStyle.Render(m.notice)
	}
	if m.err != nil {
		out += "\n" + theme.ErrorStyle.Render(m.err.Error())
	}
	return out
}

// detail renders the selected event's summary block.
func (m Model) detail(ev model.Event) string {
	lines := []string{
		detailTitleStyle.Render(calendar.ChipSummary(ev)),
	}

	if tr := calendar.TimeRange(ev); tr != "" {
		lines = append(lines, ev.Start.Format("Mon Jan 2")+" "+tr)
	} else {
		lines = append(lines, ev.Start.Format("Mon Jan 2"))
	}
	if ev.Assignee != "" {
		lines = append(lines, "Assignee: "+ev.Assignee)
	}
	if batch := calendar.BatchLine(ev); batch != "" {
		lines = append(lines, "Batch: "+batch)
	}
	if ev.RecurrenceBadge != "" {
		lines = append(lines, "Repeats: "+ev.RecurrenceBadge)
	}
	if ev.Equipment != "" {
		lines = append(lines, "Equipment: "+ev.Equipment)
	}
	if ev.NotesCount > 0 {
		lines = append(lines, fmt.Sprintf("Notes: %d", ev.NotesCount))
	}
	if ev.Description != "" {
		lines = append(lines, "", ev.Description)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
