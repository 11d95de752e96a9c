package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/prepline/prepline/internal/model"
)

// defaultTaskDuration is assumed for occurrences expanded from a
// cleaning definition, which carries no duration of its own.
const defaultTaskDuration = time.Hour

// ExpandItem generates calendar events for a recurring cleaning
// definition within [from, to). The backend materializes task instances
// for the near term; this covers calendar windows it has not
// materialized yet. One-off items (no recurrence type) produce no
// occurrences.
func ExpandItem(
	item model.CleaningItem,
	from, to time.Time,
) ([]model.Event, error) {
	freq, ok := recurrenceFreq(item.RecurrenceType)
	if !ok {
		return nil, nil
	}

	anchor := item.CreatedAt
	if anchor.IsZero() {
		anchor = from
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: anchor,
	})
	if err != nil {
		return nil, fmt.Errorf("building recurrence rule for item %s: %w", item.ID, err)
	}

	badge := recurrenceBadges[strings.ToLower(item.RecurrenceType)]
	now := time.Now()

	var events []model.Event
	for _, start := range rule.Between(from, to, true) {
		if !start.Before(to) {
			continue
		}
		events = append(events, model.Event{
			// Occurrence IDs are derived so repeated expansions of the
			// same window stay stable.
			ID:              fmt.Sprintf("%s:%s", item.ID, start.Format("2006-01-02")),
			Title:           item.Name,
			Start:           start,
			End:             start.Add(defaultTaskDuration),
			Kind:            model.KindCleaning,
			Status:          model.StatusScheduled,
			ResourceID:      item.AssigneeID,
			RecurrenceBadge: badge,
			Equipment:       item.Equipment,
			Description:     item.Description,
			FetchedAt:       now,
		})
	}

	return events, nil
}

// recurrenceFreq maps a backend recurrence type to an rrule frequency.
func recurrenceFreq(recurrenceType string) (rrule.Frequency, bool) {
	switch strings.ToLower(recurrenceType) {
	case "daily":
		return rrule.DAILY, true
	case "weekly":
		return rrule.WEEKLY, true
	case "monthly":
		return rrule.MONTHLY, true
	default:
		return 0, false
	}
}
