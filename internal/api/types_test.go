package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsStringsAndNumbers(t *testing.T) {
	var id ID

	require.NoError(t, json.Unmarshal([]byte(`"abc-123"`), &id))
	assert.Equal(t, "abc-123", id.String())

	require.NoError(t, json.Unmarshal([]byte(`42`), &id))
	assert.Equal(t, "42", id.String())

	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestTimestampLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2026-03-10T09:00:00Z"`:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		`"2026-03-10T09:00:00"`:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		`"2026-03-10T09:00"`:          time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		`"2026-03-10"`:                time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		`"2026-03-10T09:00:00+02:00"`: time.Date(2026, 3, 10, 9, 0, 0, 0, time.FixedZone("", 2*3600)),
	}

	for in, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), "input %s", in)
		assert.True(t, ts.Time.Equal(want), "input %s: got %s", in, ts.Time)
	}
}

func TestTimestampToleratesNullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))
}

func TestDecodeFlexibleListBareArray(t *testing.T) {
	body := []byte(`[
		{"id": 1, "name": "Degrease fryer"},
		{"id": "c-2", "name": "Mop floors"}
	]`)

	var items []CleaningItem
	count, err := decodeFlexibleList(body, &items)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID.String())
	assert.Equal(t, "c-2", items[1].ID.String())
}

func TestDecodeFlexibleListEnvelope(t *testing.T) {
	body := []byte(`{
		"results": [{"id": "t-1", "name": "Degrease fryer", "start": "2026-03-10T09:00"}],
		"count": 57,
		"next": "/cleaningschedule/?page=2",
		"previous": null
	}`)

	var tasks []CleaningTask
	count, err := decodeFlexibleList(body, &tasks)
	require.NoError(t, err)

	assert.Equal(t, 57, count)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t-1", tasks[0].ID.String())
	assert.Equal(t, 9, tasks[0].Start.Hour())
}

func TestDecodeFlexibleListEmptyEnvelope(t *testing.T) {
	var tasks []CleaningTask
	count, err := decodeFlexibleList([]byte(`{"count": 0}`), &tasks)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, tasks)
}
