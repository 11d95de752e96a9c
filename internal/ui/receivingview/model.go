// Package receivingview is the goods-received log screen: a paginated,
// searchable, polling table over the receiving endpoint with a detail
// panel for the selected record.
package receivingview

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/datatable"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/store"
	"github.com/prepline/prepline/internal/theme"
)

// RecordLoadedMsg delivers a fetched record detail.
type RecordLoadedMsg struct {
	Record model.ReceivingRecord
	Err    error
}

// orderings are the sort expressions cycled by the o key. A leading "-"
// means descending.
var orderings = []string{
	"-received_at",
	"expiry_date",
	"supplier",
	"product",
}

const requestTimeout = 30 * time.Second

// Model is the Bubble Tea model for the receiving screen.
type Model struct {
	client *api.Client

	table       datatable.Model
	orderingIdx int

	detail *model.ReceivingRecord
	err    error

	width  int
	height int
}

// columns defines the receiving table layout.
func columns(width int) []table.Column {
	w := width / 6
	if w < 10 {
		w = 10
	}
	return []table.Column{
		{Title: "Received", Width: w},
		{Title: "Supplier", Width: w},
		{Title: "Product", Width: w + 4},
		{Title: "Qty", Width: w - 4},
		{Title: "Expiry", Width: w},
		{Title: "Temp", Width: w - 4},
	}
}

// New creates the receiving screen. Fetched pages are mirrored into the
// local cache so the overview's expiry report works offline.
func New(client *api.Client, cache store.Store, pageSize int, pollInterval time.Duration, width, height int) Model {
	fetch := func(ctx context.Context, req datatable.Request) (datatable.Response, error) {
		page, err := client.ListReceivingRecords(ctx, api.ReceivingQuery{
			Page:     req.Page,
			PageSize: req.PageSize,
			Ordering: req.Ordering,
			Search:   req.Search,
		})
		if err != nil {
			return datatable.Response{}, err
		}

		if cache != nil {
			// Best effort: a cache failure must not break the table.
			_ = cache.UpsertReceivingRecords(ctx, page.Records)
		}

		rows := make([]table.Row, len(page.Records))
		for i, r := range page.Records {
			rows[i] = recordRow(r)
		}
		return datatable.Response{
			Rows:    rows,
			Count:   page.Count,
			HasNext: page.HasNext,
			HasPrev: page.HasPrev,
		}, nil
	}

	dt := datatable.New("receiving", columns(width), fetch, pageSize, pollInterval)
	dt.SetWidth(width)
	dt.SetInitialOrdering(orderings[0])

	return Model{
		client: client,
		table:  dt,
		width:  width,
		height: height,
	}
}

// recordRow flattens a record into table cells. The record ID rides
// along in a hidden trailing cell for detail lookup.
func recordRow(r model.ReceivingRecord) table.Row {
	expiry := ""
	if !r.ExpiryDate.IsZero() {
		expiry = r.ExpiryDate.Format("2006-01-02")
	}
	received := ""
	if !r.ReceivedAt.IsZero() {
		received = r.ReceivedAt.Format("2006-01-02")
	}
	return table.Row{
		received,
		r.Supplier,
		r.Product,
		strconv.FormatFloat(r.Quantity, 'f', -1, 64) + " " + r.Unit,
		expiry,
		fmt.Sprintf("%.1f°C", r.Temperature),
		r.ID,
	}
}

// CapturesInput reports whether the search field currently owns all
// key input.
func (m Model) CapturesInput() bool {
	return m.table.Searching()
}

// Init starts the table's first fetch and poll loop.
func (m Model) Init() tea.Cmd {
	return m.table.Init()
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
}

// Update handles messages for the receiving screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		rec := msg.Record
		m.detail = &rec
		return m, nil

	case tea.KeyMsg:
		if m.table.Searching() {
			break
		}
		switch msg.String() {
		case "enter":
			return m, m.loadDetailCmd()
		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
		case "o":
			m.orderingIdx = (m.orderingIdx + 1) % len(orderings)
			return m, m.table.SetOrdering(orderings[m.orderingIdx])
		case "R":
			return m, m.table.Refresh()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// loadDetailCmd fetches the full record for the focused row.
func (m Model) loadDetailCmd() tea.Cmd {
	row := m.table.SelectedRow()
	if row == nil || len(row) == 0 {
		return nil
	}
	id := row[len(row)-1]
	client := m.client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		rec, err := client.GetReceivingRecord(ctx, id)
		loaded := RecordLoadedMsg{Err: err}
		if rec != nil {
			loaded.Record = *rec
		}
		return loaded
	}
}

// View renders the table and, when open, the detail panel.
func (m Model) View() string {
	out := m.table.View()

	if m.detail != nil {
		out += "\n" + theme.PanelStyle.Width(m.width-2).Render(m.detailView(*m.detail))
	}
	if m.err != nil {
		out += "\n" + theme.ErrorStyle.Render(m.err.Error())
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(out)
}

func (m Model) detailView(r model.ReceivingRecord) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render(r.Product + " from " + r.Supplier)

	lines := []string{title}
	if !r.ReceivedAt.IsZero() {
		lines = append(lines, "Received: "+r.ReceivedAt.Format("Mon Jan 2 15:04"))
	}
	lines = append(lines, fmt.Sprintf("Quantity: %s %s", strconv.FormatFloat(r.Quantity, 'f', -1, 64), r.Unit))
	lines = append(lines, fmt.Sprintf("Temperature: %.1f°C", r.Temperature))
	if !r.ExpiryDate.IsZero() {
		expiry := "Expiry: " + r.ExpiryDate.Format("2006-01-02")
		if r.ExpiresWithin(time.Now(), 3) {
			expiry = theme.ErrorStyle.Render(expiry + " (expiring soon)")
		}
		lines = append(lines, expiry)
	}
	if r.Notes != "" {
		lines = append(lines, "", r.Notes)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
