package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/store"
	"github.com/prepline/prepline/tests/testutil"
)

// fakeBackend serves both schedule feeds with canned bodies.
func fakeBackend(t *testing.T, cleaning, recipes string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		switch r.URL.Path {
		case "/cleaningschedule/":
			w.Write([]byte(cleaning))
		case "/recipeschedule/":
			w.Write([]byte(recipes))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPollNormalizesBothFeedsAndCaches(t *testing.T) {
	srv := fakeBackend(t,
		`[{"id": "c-1", "name": "Degrease fryer", "start": "2026-03-10T09:00", "status": "in progress", "recurrence_type": "weekly"}]`,
		`[{"id": "r-1", "recipe_name": "Bread Dough", "start": "2026-03-10T06:00", "batch_size": 20, "yield_unit": "kg"}]`,
		http.StatusOK)

	s := testutil.NewTestStore(t)
	p := New(api.NewClient(srv.URL, "t"), s, "dep-1", time.Minute)

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	p.from, p.to = from, to

	p.poll()

	var msg SyncResultMsg
	select {
	case msg = <-p.resultCh:
	default:
		t.Fatal("no result message emitted")
	}

	require.NoError(t, msg.Error)
	assert.Equal(t, [2]time.Time{from, to}, msg.Window)
	require.Len(t, msg.Events, 2)

	assert.Equal(t, model.KindCleaning, msg.Events[0].Kind)
	assert.Equal(t, model.StatusInProgress, msg.Events[0].Status)
	assert.Equal(t, "Weekly", msg.Events[0].RecurrenceBadge)
	assert.Equal(t, model.KindRecipe, msg.Events[1].Kind)
	assert.Equal(t, "Bread Dough", msg.Events[1].Title)

	// The poll also lands in the local cache.
	cached, err := s.GetEvents(context.Background(), store.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

func TestPollFlagsAuthErrors(t *testing.T) {
	srv := fakeBackend(t, "", "", http.StatusUnauthorized)
	p := New(api.NewClient(srv.URL, "expired"), nil, "dep-1", time.Minute)

	p.poll()

	var msg SyncResultMsg
	select {
	case msg = <-p.resultCh:
	default:
		t.Fatal("no result message emitted")
	}

	require.Error(t, msg.Error)
	require.NotNil(t, msg.AuthError)
	assert.Contains(t, msg.AuthError.Message, "authentication expired")
}

func TestPollReportsNonAuthErrorsPlainly(t *testing.T) {
	srv := fakeBackend(t, "", "", http.StatusInternalServerError)
	p := New(api.NewClient(srv.URL, "t"), nil, "dep-1", time.Minute)

	p.poll()

	var msg SyncResultMsg
	select {
	case msg = <-p.resultCh:
	default:
		t.Fatal("no result message emitted")
	}

	require.Error(t, msg.Error)
	assert.Nil(t, msg.AuthError)
}

func TestSetWindowQueuesARefresh(t *testing.T) {
	p := New(nil, nil, "dep-1", time.Minute)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	p.SetWindow(from, to)

	p.mu.Lock()
	assert.Equal(t, from, p.from)
	assert.Equal(t, to, p.to)
	p.mu.Unlock()

	select {
	case <-p.triggerCh:
	default:
		t.Fatal("SetWindow did not queue a poll trigger")
	}
}

func TestStatusesTrackBothFeeds(t *testing.T) {
	srv := fakeBackend(t, `[]`, `[]`, http.StatusOK)
	p := New(api.NewClient(srv.URL, "t"), nil, "dep-1", time.Minute)

	p.poll()

	statuses := p.Statuses()
	require.Len(t, statuses, 2)
	for _, st := range statuses {
		assert.Equal(t, SyncIdle, st.State, "feed %s", st.Feed)
		assert.NoError(t, st.Error, "feed %s", st.Feed)
		assert.False(t, st.LastSync.IsZero(), "feed %s", st.Feed)
	}
}
