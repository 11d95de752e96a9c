// Package app holds the root Bubble Tea model: screen routing, global
// keybindings, and the wiring between the poller and the screens.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/calendar"
	"github.com/prepline/prepline/internal/keys"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/schedule"
	"github.com/prepline/prepline/internal/store"
	appsync "github.com/prepline/prepline/internal/sync"
	"github.com/prepline/prepline/internal/ui"
	"github.com/prepline/prepline/internal/ui/calendarview"
	"github.com/prepline/prepline/internal/ui/helpview"
	"github.com/prepline/prepline/internal/ui/itemsview"
	"github.com/prepline/prepline/internal/ui/landing"
	"github.com/prepline/prepline/internal/ui/overview"
	"github.com/prepline/prepline/internal/ui/receivingview"
	"github.com/prepline/prepline/internal/waitlist"
)

// staffLoadedMsg delivers the department staff fetch.
type staffLoadedMsg struct {
	staff []model.StaffMember
	err   error
}

// Screen identifies the active top-level screen.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenCalendar
	ScreenItems
	ScreenReceiving
	ScreenOverview
	ScreenHelp
)

// Model is the root Bubble Tea model that manages screen routing,
// layout, and the background poller.
type Model struct {
	cfg    *model.AppConfig
	client *api.Client
	store  *store.SQLiteStore
	keys   *keys.KeyMap
	layout ui.Layout

	screen     Screen
	prevScreen Screen

	landingView   landing.Model
	calendarView  calendarview.Model
	itemsView     itemsview.Model
	receivingView receivingview.Model
	overviewView  overview.Model
	helpView      helpview.Model

	poller *appsync.Poller
	staff  []model.StaffMember

	ready            bool
	authErrorMessage string
	lastSyncErr      error
}

// New creates the root application model.
func New(cfg *model.AppConfig, client *api.Client, s *store.SQLiteStore) Model {
	km := keys.DefaultKeyMap()

	poller := appsync.New(client, s, cfg.API.DepartmentID,
		time.Duration(cfg.API.PollIntervalSec)*time.Second)

	renderer := calendar.NewRenderer(cfg.Display.Renderer)
	submitter := waitlist.New(s)
	tablePoll := time.Duration(cfg.Display.TablePollIntervalSec) * time.Second

	return Model{
		cfg:           cfg,
		client:        client,
		store:         s,
		keys:          km,
		screen:        ScreenLanding,
		landingView:   landing.New(submitter, 80, 24),
		calendarView:  calendarview.New(client, renderer, 80, 24),
		itemsView:     itemsview.New(client, cfg.API.DepartmentID, 80, 24),
		receivingView: receivingview.New(client, s, cfg.Display.PageSize, tablePoll, 80, 24),
		overviewView:  overview.New(s, 80, 24),
		helpView:      helpview.New(km, 80, 24),
		poller:        poller,
	}
}

// Init shows the landing screen; the dashboards spin up once the user
// moves past it.
func (m Model) Init() tea.Cmd {
	return m.landingView.Init()
}

// Update handles messages and dispatches to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.landingView.SetSize(w, h)
		m.calendarView.SetSize(w, h)
		m.itemsView.SetSize(w, h)
		m.receivingView.SetSize(w, h)
		m.overviewView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active screen so huh forms can lay out.
		return m.updateActiveScreen(msg)

	case landing.EnterAppMsg:
		m.screen = ScreenCalendar
		return m, tea.Batch(
			m.poller.Start(),
			m.calendarView.Init(),
			m.itemsView.Init(),
			m.receivingView.Init(),
			m.overviewView.Init(),
			m.loadStaff(),
		)

	case appsync.SyncResultMsg:
		if msg.AuthError != nil {
			m.authErrorMessage = msg.AuthError.Message
		} else if msg.Error == nil {
			m.authErrorMessage = ""
		}
		m.lastSyncErr = msg.Error

		if msg.Error == nil {
			events := m.mergeExpanded(msg.Events, msg.Window[0], msg.Window[1])
			m.calendarView.SetEvents(events)
		}
		return m, tea.Batch(
			m.poller.WaitForNextResult(),
			m.overviewView.Refresh(),
		)

	case staffLoadedMsg:
		if msg.err == nil {
			m.staff = msg.staff
			m.calendarView.SetResources(staffResources(msg.staff))
			m.itemsView.SetStaff(msg.staff)
		}
		return m, nil

	case calendarview.WindowChangedMsg:
		return m, m.poller.SetWindow(msg.From, msg.To)

	case calendarview.RescheduledMsg:
		// Refresh after a persisted move so the calendar reflects the
		// backend's answer rather than the optimistic position.
		var cmd tea.Cmd
		m.calendarView, cmd = m.calendarView.Update(msg)
		if msg.Err == nil {
			return m, tea.Batch(cmd, m.poller.Refresh())
		}
		return m, cmd

	case itemsview.ItemSavedMsg, itemsview.ItemDeletedMsg:
		// Item changes affect the expanded schedule too.
		var cmd tea.Cmd
		m.itemsView, cmd = m.itemsView.Update(msg)
		return m, tea.Batch(cmd, m.poller.Refresh())

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveScreen(msg)
}

// handleGlobalKey processes shortcuts that work across screens. Keys
// are not intercepted while a form or search field owns input.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.screen == ScreenLanding {
		if msg.String() == "ctrl+c" {
			return true, m, tea.Quit
		}
		return false, m, nil
	}
	if m.capturesInput() {
		if msg.String() == "ctrl+c" {
			m.poller.Stop()
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.poller.Stop()
		return true, m, tea.Quit

	case "?":
		if m.screen == ScreenHelp {
			m.screen = m.prevScreen
		} else {
			m.prevScreen = m.screen
			m.screen = ScreenHelp
		}
		return true, m, nil

	case "esc":
		if m.screen == ScreenHelp {
			m.screen = m.prevScreen
			return true, m, nil
		}

	case "1":
		m.screen = ScreenCalendar
		return true, m, nil
	case "2":
		m.screen = ScreenItems
		return true, m, nil
	case "3":
		m.screen = ScreenReceiving
		return true, m, nil
	case "4":
		m.screen = ScreenOverview
		return true, m, m.overviewView.Refresh()

	case "R":
		if m.screen == ScreenCalendar {
			return true, m, m.poller.Refresh()
		}
	}

	return false, m, nil
}

// capturesInput reports whether the active screen owns all keystrokes.
func (m Model) capturesInput() bool {
	switch m.screen {
	case ScreenItems:
		return m.itemsView.CapturesInput()
	case ScreenReceiving:
		return m.receivingView.CapturesInput()
	}
	return false
}

// updateActiveScreen dispatches the message to the active screen.
func (m Model) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.screen {
	case ScreenLanding:
		m.landingView, cmd = m.landingView.Update(msg)
	case ScreenCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
	case ScreenItems:
		m.itemsView, cmd = m.itemsView.Update(msg)
	case ScreenReceiving:
		m.receivingView, cmd = m.receivingView.Update(msg)
	case ScreenOverview:
		m.overviewView, cmd = m.overviewView.Update(msg)
	case ScreenHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// mergeExpanded supplements fetched events with locally expanded
// recurrence occurrences for days the backend has not materialized.
/// Fetched instances win: an expansion is dropped when a fetched
// cleaning event for the same item already covers that day.
func (m Model) mergeExpanded(events []model.Event, from, to time.Time) []model.Event {
	items := m.itemsView.Items()
	if len(items) == 0 {
		return events
	}

	covered := make(map[string]bool)
	for _, ev := range events {
		if ev.Kind == model.KindCleaning {
			covered[coverKey(ev.ID, ev.Start)] = true
		}
	}

	out := events
	for _, item := range items {
		occurrences, err := schedule.ExpandItem(item, from, to)
		if err != nil {
			continue
		}
		for _, occ := range occurrences {
			if covered[coverKey(item.ID, occ.Start)] {
				continue
			}
			out = append(out, occ)
		}
	}
	return out
}

// coverKey identifies one item-day. Fetched instance IDs embed the item
// ID, so prefix matching by item and day is enough to deduplicate.
func coverKey(id string, day time.Time) string {
	itemID := id
	if i := strings.IndexByte(id, ':'); i > 0 {
		itemID = id[:i]
	}
	return itemID + "@" + day.Format("2006-01-02")
}

// loadStaff fetches the department staff for lanes and assignment.
func (m Model) loadStaff() tea.Cmd {
	client := m.client
	departmentID := m.cfg.API.DepartmentID

	return func() tea.Msg {
		if departmentID == "" {
			return staffLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		staff, err := client.ListDepartmentStaff(ctx, departmentID, "")
		return staffLoadedMsg{staff: staff, err: err}
	}
}

// staffResources maps staff members onto calendar resource lanes.
func staffResources(staff []model.StaffMember) []model.Resource {
	if len(staff) == 0 {
		return nil
	}
	resources := make([]model.Resource, len(staff))
	for i, s := range staff {
		resources[i] = model.Resource{ID: s.ID, Title: s.DisplayName()}
	}
	return resources
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.screen == ScreenLanding {
		return m.landingView.View()
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) headerTitle() string {
	switch m.screen {
	case ScreenCalendar:
		state := m.calendarView.ViewState()
		return fmt.Sprintf("prepline · calendar (%s)", state.View)
	case ScreenItems:
		return "prepline · cleaning items"
	case ScreenReceiving:
		return "prepline · receiving"
	case ScreenOverview:
		return "prepline · overview"
	case ScreenHelp:
		return "prepline · help"
	default:
		return "prepline"
	}
}

func (m Model) renderContent() string {
	switch m.screen {
	case ScreenCalendar:
		return m.calendarView.View()
	case ScreenItems:
		return m.itemsView.View()
	case ScreenReceiving:
		return m.receivingView.View()
	case ScreenOverview:
		return m.overviewView.View()
	case ScreenHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// syncStatus summarizes the poller state for the header.
func (m Model) syncStatus() string {
	if m.authErrorMessage != "" {
		return m.authErrorMessage
	}
	if m.lastSyncErr != nil {
		return "sync error"
	}

	var last time.Time
	for _, st := range m.poller.Statuses() {
		if st.State == appsync.SyncRunning {
			return "syncing…"
		}
		if st.LastSync.After(last) {
			last = st.LastSync
		}
	}
	if last.IsZero() {
		return ""
	}
	return "synced " + last.Format("15:04:05")
}

// keyHints renders the per-screen status bar shortcuts.
func (m Model) keyHints() string {
	switch m.screen {
	case ScreenCalendar:
		return "v view · [/] period · m move · r resize · x export · 1-4 screens · ? help · q quit"
	case ScreenItems:
		return "n new · e edit · d delete · / filter · 1-4 screens · ? help · q quit"
	case ScreenReceiving:
		return "/ search · o ordering · ←/→ pages · enter detail · 1-4 screens · q quit"
	case ScreenOverview:
		return "R refresh · 1-4 screens · ? help · q quit"
	default:
		return "? help · q quit"
	}
}
