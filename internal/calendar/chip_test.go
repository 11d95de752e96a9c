package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/prepline/prepline/internal/model"
)

func sampleEvent() model.Event {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return model.Event{
		ID:         "ev-1",
		Title:      "Degrease fryer",
		Start:      start,
		End:        start.Add(time.Hour),
		Kind:       model.KindCleaning,
		Status:     model.StatusPending,
		Assignee:   "Jamie Smith",
		NotesCount: 2,
	}
}

func TestChipDenseIsSingleLine(t *testing.T) {
	out := Chip(sampleEvent(), DensityDense, 24)

	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "Degrease fryer")
	assert.Contains(t, out, accentRune)
	assert.Contains(t, out, statusDot)
	assert.NotContains(t, out, "09:00")
}

func TestChipCompactInlinesTimeRange(t *testing.T) {
	out := Chip(sampleEvent(), DensityCompact, 40)

	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "Degrease fryer 09:00-10:00")
}

func TestChipFullHasSecondaryRow(t *testing.T) {
	out := Chip(sampleEvent(), DensityFull, 40)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Degrease fryer")
	assert.Contains(t, lines[1], "09:00-10:00")
	assert.Contains(t, lines[1], "JS")
	assert.Contains(t, lines[1], "✎2")
}

func TestChipFullOmitsAbsentDetails(t *testing.T) {
	ev := sampleEvent()
	ev.Assignee = ""
	ev.NotesCount = 0

	out := Chip(ev, DensityFull, 40)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 2)
	assert.NotContains(t, lines[1], "✎")
}

func TestChipTruncatesToWidth(t *testing.T) {
	ev := sampleEvent()
	ev.Title = "An extremely long cleaning task title that cannot possibly fit"

	out := Chip(ev, DensityDense, 20)

	assert.LessOrEqual(t, lipgloss.Width(out), 20)
	assert.Contains(t, out, "…")
}

func TestChipSummary(t *testing.T) {
	assert.Equal(t, "Degrease fryer · pending", ChipSummary(sampleEvent()))

	ev := sampleEvent()
	ev.Status = ""
	assert.Equal(t, "Degrease fryer", ChipSummary(ev))
}

func TestTimeRange(t *testing.T) {
	ev := sampleEvent()
	assert.Equal(t, "09:00-10:00", TimeRange(ev))

	ev.End = ev.Start
	assert.Equal(t, "09:00", TimeRange(ev))

	ev.AllDay = true
	assert.Equal(t, "", TimeRange(ev))

	assert.Equal(t, "", TimeRange(model.Event{}))
}

func TestBatchLine(t *testing.T) {
	assert.Equal(t, "20 kg", BatchLine(model.Event{BatchSize: 20, YieldUnit: "kg"}))
	assert.Equal(t, "2.5 l", BatchLine(model.Event{BatchSize: 2.5, YieldUnit: "l"}))
	assert.Equal(t, "", BatchLine(model.Event{BatchSize: 20}))
	assert.Equal(t, "", BatchLine(model.Event{YieldUnit: "kg"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer than", 5))
	assert.Equal(t, "…", truncate("anything", 1))
}
