package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepline/prepline/internal/model"
)

var exportBase = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestCalendarSerializesEvents(t *testing.T) {
	ev := model.Event{
		ID:        "e1",
		Title:     "Degrease fryer",
		Start:     exportBase,
		End:       exportBase.Add(time.Hour),
		Kind:      model.KindCleaning,
		Status:    model.StatusPending,
		Assignee:  "Jamie Smith",
		FetchedAt: exportBase,
	}

	out := Calendar([]model.Event{ev}).Serialize()

	assert.Contains(t, out, "PRODID:-//prepline//schedule//EN")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "SUMMARY:Degrease fryer")
	assert.Contains(t, out, "DTSTART:20260310T090000Z")
	assert.Contains(t, out, "DTEND:20260310T100000Z")
	assert.Contains(t, out, "CATEGORIES:cleaning/pending")
	assert.Contains(t, out, "ATTENDEE:Jamie Smith")
}

func TestCalendarZeroDurationGetsDefaultSpan(t *testing.T) {
	ev := model.Event{
		ID:    "e1",
		Title: "Stock check",
		Start: exportBase,
		End:   exportBase,
		Kind:  model.KindCleaning,
	}

	out := Calendar([]model.Event{ev}).Serialize()

	assert.Contains(t, out, "DTSTART:20260310T090000Z")
	assert.Contains(t, out, "DTEND:20260310T100000Z")
}

func TestCalendarAllDayEvents(t *testing.T) {
	ev := model.Event{
		ID:     "e1",
		Title:  "Deep clean",
		Start:  exportBase,
		AllDay: true,
		Kind:   model.KindCleaning,
	}

	out := Calendar([]model.Event{ev}).Serialize()

	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260310")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260311")
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "week.ics")
	events := []model.Event{{
		ID:    "e1",
		Title: "Bread Dough",
		Start: exportBase,
		End:   exportBase.Add(2 * time.Hour),
		Kind:  model.KindRecipe,
	}}

	require.NoError(t, WriteFile(path, events))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Bread Dough")
	assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))
}

func TestDefaultPathIsDated(t *testing.T) {
	path := DefaultPath(exportBase)
	assert.Equal(t, "prepline-schedule-2026-03-10.ics", filepath.Base(path))
}
