// Package datatable is a paginated data table component for Bubble Tea
// screens. It supports a server mode, where page, ordering, and search
// are pushed to a fetch function and the table polls for fresh data,
// and a static mode, where a fixed row set is paged and filtered
// locally and polling is suspended.
package datatable

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepline/prepline/internal/theme"
)

// Mode selects where the table's data comes from.
type Mode int

const (
	// ModeServer fetches pages remotely and polls for changes.
	ModeServer Mode = iota

	// ModeStatic pages and filters a fixed row set locally.
	ModeStatic
)

// searchDebounce is how long typing must pause before a search
// round-trips to the server.
const searchDebounce = 500 * time.Millisecond

// fetchTimeout bounds a single page fetch.
const fetchTimeout = 30 * time.Second

// Request describes one page fetch. Page is one-based here because the
// backend's pagination is one-based; the table tracks pages zero-based
// internally and converts at this boundary only.
type Request struct {
	Page     int
	PageSize int
	Ordering string
	Search   string
}

// Response is one fetched page.
type Response struct {
	Rows    []table.Row
	Count   int
	HasNext bool
	HasPrev bool
}

// FetchFunc loads one page. It runs inside a tea.Cmd goroutine.
type FetchFunc func(ctx context.Context, req Request) (Response, error)

// DataMsg delivers a completed fetch. Seq carries the request's
// sequence number so stale responses can be discarded.
type DataMsg struct {
	ID   string
	Seq  uint64
	Resp Response
	Err  error
}

// debounceMsg fires when the search debounce timer elapses.
type debounceMsg struct {
	id    string
	token int
}

// pollMsg fires on the poll interval.
type pollMsg struct {
	id string
}

// Model is the table state. Create with New.
type Model struct {
	id   string
	mode Mode

	tbl    table.Model
	search textinput.Model

	fetch        FetchFunc
	pollInterval time.Duration

	page     int // zero-based
	pageSize int
	ordering string
	query    string

	// issued is the sequence number of the most recent request; only
	// the response carrying exactly this number is applied.
	issued uint64
	nextSeq uint64

	// debounceToken invalidates in-flight debounce timers when the
	// user keeps typing.
	debounceToken int

	staticRows []table.Row

	count   int
	hasNext bool
	hasPrev bool
	loading bool
	err     error

	searching bool
	width     int
}

// New creates a server-mode table. The id must be unique per instance
// on screen; it scopes debounce and poll messages so two tables never
// consume each other's timers.
func New(id string, columns []table.Column, fetch FetchFunc, pageSize int, pollInterval time.Duration) Model {
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(theme.ColorTeal)
	styles.Selected = styles.Selected.Foreground(theme.ColorWhite).Background(theme.ColorSubtle).Bold(true)
	tbl.SetStyles(styles)

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 64

	if pageSize <= 0 {
		pageSize = 20
	}

	return Model{
		id:           id,
		mode:         ModeServer,
		tbl:          tbl,
		search:       search,
		fetch:        fetch,
		pollInterval: pollInterval,
		pageSize:     pageSize,
		nextSeq:      1,
	}
}

// NewStatic creates a static-mode table over a fixed row set. Static
// tables never fetch and never poll.
func NewStatic(id string, columns []table.Column, rows []table.Row, pageSize int) Model {
	m := New(id, columns, nil, pageSize, 0)
	m.mode = ModeStatic
	m.staticRows = rows
	m.applyStatic()
	return m
}

// Init starts the first fetch and, in server mode, the poll loop.
func (m Model) Init() tea.Cmd {
	if m.mode == ModeStatic {
		return nil
	}
	cmds := []tea.Cmd{m.fetchCmd()}
	if m.pollInterval > 0 {
		cmds = append(cmds, m.pollTick())
	}
	return tea.Batch(cmds...)
}

// SetInitialOrdering sets the ordering expression before Init without
// issuing a fetch.
func (m *Model) SetInitialOrdering(ordering string) {
	m.ordering = ordering
}

// SetOrdering sets the ordering expression (a field name, "-" prefixed
// for descending) and refetches from the first page.
func (m *Model) SetOrdering(ordering string) tea.Cmd {
	m.ordering = ordering
	m.page = 0
	return m.reload()
}

// SetStaticRows replaces a static table's row set.
func (m *Model) SetStaticRows(rows []table.Row) {
	m.staticRows = rows
	m.page = 0
	m.applyStatic()
}

// SetWidth resizes the table columns proportionally.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.tbl.SetWidth(width)
}

// SelectedRow returns the focused row, or nil when the table is empty.
func (m Model) SelectedRow() table.Row {
	if len(m.tbl.Rows()) == 0 {
		return nil
	}
	return m.tbl.SelectedRow()
}

// Page returns the zero-based current page.
func (m Model) Page() int { return m.page }

// Count returns the total row count reported by the last fetch (or the
// static row count).
func (m Model) Count() int { return m.count }

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the last fetch error, cleared by the next success.
func (m Model) Err() error { return m.err }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searching }

// Refresh forces an immediate refetch of the current page.
func (m *Model) Refresh() tea.Cmd { return m.reload() }

// Update handles table messages and key input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DataMsg:
		if msg.ID != m.id {
			return m, nil
		}
		// Last request wins: anything but the newest sequence is a
		// stale response racing a newer request, so it is dropped.
		if msg.Seq != m.issued {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.count = msg.Resp.Count
		m.hasNext = msg.Resp.HasNext
		m.hasPrev = msg.Resp.HasPrev
		m.tbl.SetRows(msg.Resp.Rows)
		return m, nil

	case debounceMsg:
		if msg.id != m.id || msg.token != m.debounceToken {
			return m, nil
		}
		// Typing has settled; commit the query and restart from the
		// first page.
		m.query = m.search.Value()
		m.page = 0
		return m, m.reload()

	case pollMsg:
		if msg.id != m.id {
			return m, nil
		}
		if m.mode == ModeStatic || m.pollInterval <= 0 {
			return m, nil
		}
		return m, tea.Batch(m.fetchCmd(), m.pollTick())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key input to the search field or the table.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)

		if m.mode == ModeStatic {
			m.query = m.search.Value()
			m.page = 0
			m.applyStatic()
			return m, cmd
		}

		// Each keystroke re-arms the debounce timer; only the final
		// token's expiry triggers a fetch.
		m.debounceToken++
		token := m.debounceToken
		id := m.id
		debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return debounceMsg{id: id, token: token}
		})
		return m, tea.Batch(cmd, debounce)
	}

	switch msg.String() {
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "right", "n":
		return m.nextPage()
	case "left", "p":
		return m.prevPage()
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m Model) nextPage() (Model, tea.Cmd) {
	if m.mode == ModeStatic {
		if (m.page+1)*m.pageSize < len(m.filteredStatic()) {
			m.page++
			m.applyStatic()
		}
		return m, nil
	}
	if !m.hasNext {
		return m, nil
	}
	m.page++
	return m, m.reload()
}

func (m Model) prevPage() (Model, tea.Cmd) {
	if m.page == 0 {
		return m, nil
	}
	m.page--
	if m.mode == ModeStatic {
		m.applyStatic()
		return m, nil
	}
	return m, m.reload()
}

// reload issues a fetch for the current request state.
func (m *Model) reload() tea.Cmd {
	if m.mode == ModeStatic {
		m.applyStatic()
		return nil
	}
	return m.fetchCmd()
}

// fetchCmd issues a sequence-numbered fetch for the current page. The
// one-based conversion happens here and nowhere else.
func (m *Model) fetchCmd() tea.Cmd {
	if m.fetch == nil {
		return nil
	}

	seq := m.nextSeq
	m.nextSeq++
	m.issued = seq
	m.loading = true

	id := m.id
	fetch := m.fetch
	req := Request{
		Page:     m.page + 1,
		PageSize: m.pageSize,
		Ordering: m.ordering,
		Search:   m.query,
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		resp, err := fetch(ctx, req)
		return DataMsg{ID: id, Seq: seq, Resp: resp, Err: err}
	}
}

// pollTick arms the next poll timer.
func (m Model) pollTick() tea.Cmd {
	id := m.id
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollMsg{id: id}
	})
}

// filteredStatic applies the local search filter to the static rows.
func (m Model) filteredStatic() []table.Row {
	if m.query == "" {
		return m.staticRows
	}
	needle := strings.ToLower(m.query)

	var out []table.Row
	for _, row := range m.staticRows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// applyStatic slices the filtered static rows to the current page.
func (m *Model) applyStatic() {
	rows := m.filteredStatic()
	m.count = len(rows)

	lo := m.page * m.pageSize
	if lo > len(rows) {
		lo = 0
		m.page = 0
	}
	hi := lo + m.pageSize
	if hi > len(rows) {
		hi = len(rows)
	}

	m.hasPrev = m.page > 0
	m.hasNext = hi < len(rows)
	m.tbl.SetRows(rows[lo:hi])
}

// View renders the table with its search line and pagination footer.
func (m Model) View() string {
	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	b.WriteString(m.tbl.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// footer summarizes pagination state and any fetch error.
func (m Model) footer() string {
	parts := []string{}

	label := "page " + strconv.Itoa(m.page+1)
	if m.pageSize > 0 && m.count > 0 {
		pages := (m.count + m.pageSize - 1) / m.pageSize
		label += "/" + strconv.Itoa(pages)
	}
	parts = append(parts, label, strconv.Itoa(m.count)+" rows")

	if m.loading {
		parts = append(parts, "refreshing…")
	}
	if m.err != nil {
		parts = append(parts, theme.ErrorStyle.Render(m.err.Error()))
	}

	return theme.HelpStyle.Render(strings.Join(parts, " · "))
}
