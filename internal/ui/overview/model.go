// Package overview is the at-a-glance dashboard: today's schedule
// counts per feed and status, plus a locally filtered table of stock
// expiring within the next few days.
package overview

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/datatable"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/store"
	"github.com/prepline/prepline/internal/theme"
)

// expiryHorizonDays bounds the expiring-stock report.
const expiryHorizonDays = 3

// StatsMsg delivers the recomputed overview numbers.
type StatsMsg struct {
	Cleaning  int
	Recipes   int
	Completed int
	Pending   int
	Expiring  []model.ReceivingRecord
	Err       error
}

// Model is the Bubble Tea model for the overview screen.
type Model struct {
	cache store.Store

	stats    StatsMsg
	expiring datatable.Model
	loaded   bool

	width  int
	height int
}

func expiringColumns(width int) []table.Column {
	w := width / 4
	if w < 12 {
		w = 12
	}
	return []table.Column{
		{Title: "Product", Width: w + 6},
		{Title: "Supplier", Width: w},
		{Title: "Qty", Width: w - 6},
		{Title: "Expires", Width: w},
	}
}

// New creates the overview screen.
func New(cache store.Store, width, height int) Model {
	return Model{
		cache:    cache,
		expiring: datatable.NewStatic("overview-expiring", expiringColumns(width), nil, 10),
		width:    width,
		height:   height,
	}
}

// Init computes the first stats snapshot.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// Refresh recomputes the overview from the local cache.
func (m Model) Refresh() tea.Cmd {
	return m.refreshCmd()
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.expiring.SetWidth(width)
}

// refreshCmd reads today's events and the expiring stock from the
// cache. Everything here is local; the poller and the receiving screen
// keep the cache current.
func (m Model) refreshCmd() tea.Cmd {
	cache := m.cache

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		events, err := cache.GetEvents(ctx, store.EventFilter{From: &dayStart, Until: &dayEnd})
		if err != nil {
			return StatsMsg{Err: err}
		}

		var stats StatsMsg
		for _, ev := range events {
			switch ev.Kind {
			case model.KindCleaning:
				stats.Cleaning++
			case model.KindRecipe:
				stats.Recipes++
			}
			switch ev.Status {
			case model.StatusCompleted:
				stats.Completed++
			case model.StatusPending, model.StatusScheduled:
				stats.Pending++
			}
		}

		expiring, err := cache.GetExpiringRecords(ctx, now, expiryHorizonDays)
		if err != nil {
			return StatsMsg{Err: err}
		}
		stats.Expiring = expiring

		return stats
	}
}

// Update handles messages for the overview screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsMsg:
		m.stats = msg
		m.loaded = true
		if msg.Err == nil {
			rows := make([]table.Row, len(msg.Expiring))
			for i, r := range msg.Expiring {
				rows[i] = table.Row{
					r.Product,
					r.Supplier,
					strconv.FormatFloat(r.Quantity, 'f', -1, 64) + " " + r.Unit,
					r.ExpiryDate.Format("2006-01-02"),
				}
			}
			m.expiring.SetStaticRows(rows)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "R" {
			return m, m.refreshCmd()
		}
	}

	var cmd tea.Cmd
	m.expiring, cmd = m.expiring.Update(msg)
	return m, cmd
}

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder)

	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorTeal)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginTop(1)
)

// View renders the stat cards and expiring-stock table.
func (m Model) View() string {
	if !m.loaded {
		return theme.HelpStyle.Render("loading overview…")
	}
	if m.stats.Err != nil {
		return theme.ErrorStyle.Render(m.stats.Err.Error())
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Cleaning today", m.stats.Cleaning),
		m.card("Production runs", m.stats.Recipes),
		m.card("Completed", m.stats.Completed),
		m.card("Pending", m.stats.Pending),
	)

	section := sectionStyle.Render(
		fmt.Sprintf("Expiring within %d days", expiryHorizonDays))

	body := m.expiring.View()
	if len(m.stats.Expiring) == 0 {
		body = theme.HelpStyle.Render("nothing expiring soon")
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, cards, section, body),
	)
}

func (m Model) card(label string, value int) string {
	return cardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			cardValueStyle.Render(strconv.Itoa(value)),
			theme.HelpStyle.Render(label),
		),
	)
}
