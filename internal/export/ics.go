// Package export writes the visible schedule window to an iCalendar
// file so it can be imported into an external calendar.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/prepline/prepline/internal/model"
)

// prodID identifies this application in generated calendars.
const prodID = "-//prepline//schedule//EN"

// Calendar builds an iCalendar document from a batch of schedule
// events. Zero-duration events are emitted with a one-hour default span
// so importers display them.
func Calendar(events []model.Event) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	for _, ev := range events {
		item := cal.AddEvent(ev.ID)
		item.SetSummary(ev.Title)
		item.SetDtStampTime(ev.FetchedAt)

		if ev.AllDay {
			item.SetAllDayStartAt(ev.Start)
			item.SetAllDayEndAt(ev.Start.AddDate(0, 0, 1))
		} else {
			item.SetStartAt(ev.Start)
			end := ev.End
			if ev.ZeroDuration() {
				end = ev.Start.Add(time.Hour)
			}
			item.SetEndAt(end)
		}

		if ev.Description != "" {
			item.SetDescription(ev.Description)
		}
		if ev.Status != "" {
			item.SetProperty(ics.ComponentPropertyCategories, string(ev.Kind)+"/"+ev.Status)
		}
		if ev.Assignee != "" {
			item.SetProperty(ics.ComponentPropertyAttendee, ev.Assignee)
		}
	}

	return cal
}

// WriteFile serializes the events to an .ics file at path, creating
// parent directories as needed.
func WriteFile(path string, events []model.Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := Calendar(events).SerializeTo(f); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// DefaultPath returns a timestamped export path in the user's home
// directory.
func DefaultPath(now time.Time) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	name := fmt.Sprintf("prepline-schedule-%s.ics", now.Format("2006-01-02"))
	return filepath.Join(home, name)
}
