package schedule

import (
	"strings"
	"time"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/model"
)

// Feed type discriminants carried by backend schedule records.
const (
	TypeCleaning = "cleaning"
	TypeRecipe   = "recipe"
)

// recurrenceBadges maps backend recurrence types to display badges.
// Anything outside this table yields no badge.
var recurrenceBadges = map[string]string{
	"daily":   "Daily",
	"weekly":  "Weekly",
	"monthly": "Monthly",
}

// Record is the feed-agnostic view of one backend schedule record,
// before normalization. Type carries the feed discriminant; records
// with a missing or unrecognized Type are still normalized, tagged
// model.KindUnknown, and never dropped.
type Record struct {
	Type string

	ID         string
	Title      string
	RecipeName string

	Start  time.Time
	End    time.Time
	AllDay bool

	Status     string
	Assignee   string
	AssigneeID string
	NotesCount int

	RecurrenceType string
	BatchSize      float64
	YieldUnit      string
	Equipment      string
	Description    string
}

// FromCleaningTask adapts a cleaning schedule wire record.
func FromCleaningTask(t api.CleaningTask) Record {
	title := t.Name
	if title == "" {
		title = t.Title
	}
	return Record{
		Type:           TypeCleaning,
		ID:             t.ID.String(),
		Title:          title,
		Start:          t.Start.Time,
		End:            t.End.Time,
		AllDay:         t.AllDay,
		Status:         t.Status,
		Assignee:       t.Assignee,
		AssigneeID:     t.AssigneeID.String(),
		NotesCount:     t.NotesCount,
		RecurrenceType: t.RecurrenceType,
		Equipment:      t.Equipment,
		Description:    t.Description,
	}
}

// FromProductionRun adapts a recipe production wire record.
func FromProductionRun(r api.ProductionRun) Record {
	return Record{
		Type:        TypeRecipe,
		ID:          r.ID.String(),
		Title:       r.Title,
		RecipeName:  r.RecipeName,
		Start:       r.Start.Time,
		End:         r.End.Time,
		AllDay:      r.AllDay,
		Status:      r.Status,
		Assignee:    r.Assignee,
		AssigneeID:  r.AssigneeID.String(),
		NotesCount:  r.NotesCount,
		BatchSize:   r.BatchSize,
		YieldUnit:   r.YieldUnit,
		Equipment:   r.Equipment,
		Description: r.Description,
	}
}

// Normalize maps one backend schedule record into the canonical event
// shape. Pure function, no side effects. A missing End falls back to
// Start so zero-duration events still render.
func Normalize(rec Record, fetchedAt time.Time) model.Event {
	end := rec.End
	if end.IsZero() {
		end = rec.Start
	}

	ev := model.Event{
		ID:          rec.ID,
		Start:       rec.Start,
		End:         end,
		AllDay:      rec.AllDay,
		ResourceID:  rec.AssigneeID,
		Kind:        model.KindUnknown,
		Status:      model.NormalizeStatus(rec.Status),
		Assignee:    rec.Assignee,
		NotesCount:  rec.NotesCount,
		BatchSize:   rec.BatchSize,
		YieldUnit:   rec.YieldUnit,
		Equipment:   rec.Equipment,
		Description: rec.Description,
		FetchedAt:   fetchedAt,
	}

	switch rec.Type {
	case TypeCleaning:
		ev.Kind = model.KindCleaning
		ev.Title = rec.Title
		ev.RecurrenceBadge = recurrenceBadges[strings.ToLower(rec.RecurrenceType)]
	case TypeRecipe:
		ev.Kind = model.KindRecipe
		ev.Title = rec.RecipeName
		if ev.Title == "" {
			ev.Title = rec.Title
		}
	default:
		ev.Title = rec.Title
	}

	if ev.Title == "" {
		ev.Title = "Untitled Task"
	}

	return ev
}

// NormalizeAll maps a batch of records, preserving order.
func NormalizeAll(recs []Record, fetchedAt time.Time) []model.Event {
	events := make([]model.Event, 0, len(recs))
	for _, rec := range recs {
		events = append(events, Normalize(rec, fetchedAt))
	}
	return events
}
