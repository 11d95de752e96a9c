package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prepline/prepline/internal/model"
)

func TestRenderCleaningShowsRecurrenceBadgeAtFullDensity(t *testing.T) {
	ev := sampleEvent()
	ev.RecurrenceBadge = "Weekly"

	out := RenderEvent(ev, ViewResourceDay, 40)

	assert.Contains(t, out, "Degrease fryer")
	assert.Contains(t, out, "Weekly")
}

func TestRenderCleaningHidesBadgeInDenseAndCompactViews(t *testing.T) {
	ev := sampleEvent()
	ev.RecurrenceBadge = "Weekly"

	assert.NotContains(t, RenderEvent(ev, ViewMonth, 40), "Weekly")
	assert.NotContains(t, RenderEvent(ev, ViewTimeGridWeek, 40), "Weekly")
}

func TestRenderRecipeShowsBatchLineOffMonth(t *testing.T) {
	start := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	ev := model.Event{
		ID:        "r-1",
		Title:     "Bread Dough",
		Start:     start,
		End:       start.Add(2 * time.Hour),
		Kind:      model.KindRecipe,
		Status:    model.StatusScheduled,
		BatchSize: 20,
		YieldUnit: "kg",
	}

	week := RenderEvent(ev, ViewTimeGridWeek, 40)
	assert.Contains(t, week, "Bread Dough")
	assert.Contains(t, week, "20 kg")

	month := RenderEvent(ev, ViewMonth, 40)
	assert.Contains(t, month, "Bread Dough")
	assert.NotContains(t, month, "20 kg")
}

func TestRenderRecipeWithoutBatchDataHasNoBatchLine(t *testing.T) {
	ev := sampleEvent()
	ev.Kind = model.KindRecipe

	out := RenderEvent(ev, ViewTimeGridWeek, 40)
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, " kg")
}

func TestRenderUnknownKindFallsBack(t *testing.T) {
	ev := model.Event{ID: "x-1", Title: "Stocktake", Kind: model.KindUnknown}

	out := RenderEvent(ev, ViewResourceDay, 40)
	assert.Contains(t, out, "Unknown Event Type")
	assert.Contains(t, out, "Stocktake")

	dense := RenderEvent(ev, ViewMonth, 40)
	assert.Contains(t, dense, "Unknown Event Type")
	assert.NotContains(t, dense, "Stocktake")
}

func TestRenderEventNeverPanicsOnEmptyRecord(t *testing.T) {
	for _, view := range AllViews {
		assert.NotPanics(t, func() {
			RenderEvent(model.Event{}, view, 30)
		}, "view %s", view)
	}
}
