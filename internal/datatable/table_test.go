package datatable

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []table.Column{
	{Title: "Product", Width: 16},
	{Title: "Supplier", Width: 16},
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// recordingFetch captures every request and serves a canned response.
func recordingFetch(reqs *[]Request, resp Response) FetchFunc {
	return func(_ context.Context, req Request) (Response, error) {
		*reqs = append(*reqs, req)
		return resp, nil
	}
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, 0)

	// Two requests in flight; the older one resolves after the newer
	// one was issued.
	first := m.fetchCmd()
	second := m.fetchCmd()
	require.NotNil(t, first)
	require.NotNil(t, second)

	stale := DataMsg{ID: "t1", Seq: 1, Resp: Response{
		Rows:  []table.Row{{"old", "old"}},
		Count: 1,
	}}
	fresh := DataMsg{ID: "t1", Seq: 2, Resp: Response{
		Rows:  []table.Row{{"new", "new"}},
		Count: 1,
	}}

	m, _ = m.Update(stale)
	assert.Empty(t, m.SelectedRow(), "stale response must not land")
	assert.True(t, m.Loading())

	m, _ = m.Update(fresh)
	require.NotNil(t, m.SelectedRow())
	assert.Equal(t, "new", m.SelectedRow()[0])
	assert.False(t, m.Loading())
}

func TestResponsesForOtherTablesAreIgnored(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, 0)
	_ = m.fetchCmd()

	m, _ = m.Update(DataMsg{ID: "t2", Seq: 1, Resp: Response{
		Rows: []table.Row{{"x", "x"}}, Count: 1,
	}})

	assert.Empty(t, m.SelectedRow())
}

func TestFetchRequestsAreOneBased(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 25, 0)
	m.ordering = "-received_at"
	m.page = 2

	cmd := m.fetchCmd()
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, reqs, 1)
	assert.Equal(t, 3, reqs[0].Page)
	assert.Equal(t, 25, reqs[0].PageSize)
	assert.Equal(t, "-received_at", reqs[0].Ordering)
}

func TestSearchDebounceOnlyLastTokenCommits(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, 0)
	m.page = 3

	m, _ = m.Update(keyRunes("/"))
	require.True(t, m.Searching())

	// Three keystrokes, each re-arming the debounce timer.
	m, _ = m.Update(keyRunes("m"))
	m, _ = m.Update(keyRunes("i"))
	m, _ = m.Update(keyRunes("l"))
	assert.Equal(t, 3, m.debounceToken)

	// Earlier timers expire while typing continued; they must not fire.
	m, cmd := m.Update(debounceMsg{id: "t1", token: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 3, m.Page())
	assert.Empty(t, m.query)

	// The final timer commits the settled query and resets paging.
	m, cmd = m.Update(debounceMsg{id: "t1", token: 3})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "mil", m.query)
	assert.Equal(t, 0, m.Page())
	require.Len(t, reqs, 1)
	assert.Equal(t, "mil", reqs[0].Search)
	assert.Equal(t, 1, reqs[0].Page)
}

func TestPagingGuards(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, 0)

	// No next page known yet: right is a no-op.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Page())

	// First page: left is a no-op.
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Page())

	m.hasNext = true
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.Page())
}

func TestPollRearmsOnlyInServerMode(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, time.Minute)

	_, cmd := m.Update(pollMsg{id: "t1"})
	assert.NotNil(t, cmd)

	_, cmd = m.Update(pollMsg{id: "other"})
	assert.Nil(t, cmd)

	s := NewStatic("t2", testColumns, nil, 10)
	_, cmd = s.Update(pollMsg{id: "t2"})
	assert.Nil(t, cmd)
}

func TestStaticModePagesLocally(t *testing.T) {
	rows := []table.Row{
		{"Milk", "DairyCo"},
		{"Butter", "DairyCo"},
		{"Flour", "Millers"},
		{"Yeast", "Millers"},
		{"Salt", "Minerals"},
	}
	m := NewStatic("t1", testColumns, rows, 2)

	assert.Nil(t, m.Init(), "static tables never fetch")
	assert.Equal(t, 5, m.Count())
	assert.Equal(t, "Milk", m.SelectedRow()[0])

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd, "local paging issues no fetch")
	assert.Equal(t, 1, m.Page())
	assert.Equal(t, "Flour", m.SelectedRow()[0])

	// Past the last page: no movement.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Page())
}

func TestStaticModeFiltersImmediately(t *testing.T) {
	rows := []table.Row{
		{"Milk", "DairyCo"},
		{"Flour", "Millers"},
		{"Salt", "Minerals"},
	}
	m := NewStatic("t1", testColumns, rows, 10)

	m, _ = m.Update(keyRunes("/"))
	m, cmd := m.Update(keyRunes("mil"))

	// No debounce round-trip in static mode.
	assert.Equal(t, 0, m.debounceToken)
	_ = cmd

	assert.Equal(t, 2, m.Count(), "matches Milk and Millers")
	assert.Equal(t, "mil", m.query)
}

func TestSetStaticRowsResetsToFirstPage(t *testing.T) {
	rows := []table.Row{{"a", ""}, {"b", ""}, {"c", ""}}
	m := NewStatic("t1", testColumns, rows, 2)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, m.Page())

	m.SetStaticRows([]table.Row{{"x", ""}})

	assert.Equal(t, 0, m.Page())
	assert.Equal(t, 1, m.Count())
}

func TestSetOrderingResetsPageAndRefetches(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, 0)
	m.page = 4

	cmd := m.SetOrdering("supplier")
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 0, m.Page())
	require.Len(t, reqs, 1)
	assert.Equal(t, "supplier", reqs[0].Ordering)
	assert.Equal(t, 1, reqs[0].Page)
}

func TestFetchErrorIsSurfacedAndClearedOnSuccess(t *testing.T) {
	var reqs []Request
	m := New("t1", testColumns, recordingFetch(&reqs, Response{}), 10, 0)
	_ = m.fetchCmd()

	m, _ = m.Update(DataMsg{ID: "t1", Seq: 1, Err: context.DeadlineExceeded})
	require.Error(t, m.Err())

	_ = m.fetchCmd()
	m, _ = m.Update(DataMsg{ID: "t1", Seq: 2, Resp: Response{Count: 0}})
	assert.NoError(t, m.Err())
}
