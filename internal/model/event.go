package model

import (
	"strings"
	"time"
)

// EventKind discriminates which backend feed a schedule event came from.
type EventKind string

const (
	KindCleaning EventKind = "cleaning"
	KindRecipe   EventKind = "recipe"

	// KindUnknown tags records whose feed discriminant was missing or
	// unrecognized. They are still rendered, never dropped.
	KindUnknown EventKind = "unknown"
)

// Normalized schedule status constants used across all feeds.
const (
	StatusPending       = "pending"
	StatusInProgress    = "in_progress"
	StatusCompleted     = "completed"
	StatusScheduled     = "scheduled"
	StatusCancelled     = "cancelled"
	StatusPendingReview = "pending_review"
	StatusOnHold        = "on_hold"
)

// NormalizeStatus maps backend status spellings onto the normalized
// constants. "in progress" and "done" are accepted synonyms. Values
// outside the known set pass through unchanged; renderers fall back to
// a neutral color for them.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending
	case "in_progress", "in progress":
		return StatusInProgress
	case "completed", "done":
		return StatusCompleted
	case "scheduled":
		return StatusScheduled
	case "cancelled", "canceled":
		return StatusCancelled
	case "pending_review", "pending review":
		return StatusPendingReview
	case "on_hold", "on hold":
		return StatusOnHold
	default:
		return strings.TrimSpace(s)
	}
}

// Event is the unified calendar representation of a schedulable item
// (cleaning task or recipe production run). Instances are rebuilt on
// every refresh and never mutated in place: a move or resize produces a
// proposed change that the owning screen persists and then re-fetches.
type Event struct {
	// ID is unique per event instance within its feed.
	ID string

	// Title is the display string.
	Title string

	// Start and End bound the displayed interval. End equals Start for
	// zero-duration events.
	Start time.Time
	End   time.Time

	AllDay bool

	// ResourceID links the event to a resource lane (a staff member) in
	// resource-grouped views. Empty when unassigned.
	ResourceID string

	// Kind is immutable once assigned and selects the content renderer
	// and accent color.
	Kind EventKind

	// Status is one of the Status* constants, or a raw backend value
	// when unrecognized.
	Status string

	// Assignee is an optional display name, reduced to initials in
	// compact renderings.
	Assignee string

	// NotesCount is the number of notes attached to the record.
	NotesCount int

	// RecurrenceBadge is "Daily", "Weekly" or "Monthly" for recurring
	// cleaning tasks, empty otherwise.
	RecurrenceBadge string

	// Domain payload carried opaquely for type-specific rendering. The
	// generic calendar layer never interprets these.
	BatchSize   float64
	YieldUnit   string
	Equipment   string
	Description string

	// FetchedAt is when this event was last retrieved from the backend.
	FetchedAt time.Time
}

// Initials reduces the assignee display name to at most two initials
// for compact badge rendering. Returns "" when no assignee is set.
func (e Event) Initials() string {
	fields := strings.Fields(e.Assignee)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// ZeroDuration reports whether the event's interval is empty.
func (e Event) ZeroDuration() bool {
	return !e.End.After(e.Start)
}

// Resource is a lane (typically a staff member) against which
// resource-grouped calendar views organize events.
type Resource struct {
	ID    string
	Title string
}
