package store

import (
	"context"
	"time"

	"github.com/prepline/prepline/internal/model"
)

// EventFilter controls filtering for cached schedule event queries.
type EventFilter struct {
	Kind   *string
	Status *string

	// From/Until bound the event start time: From <= start < Until.
	From  *time.Time
	Until *time.Time

	Limit  int
	Offset int
}

// Store is the local persistence interface. The cache keeps the last
// fetched schedule window and receiving records so screens can render
// immediately on startup and survive short backend outages; waitlist
// submissions are logged locally for the demo flow.
type Store interface {
	// Schedule event cache.

	UpsertEvents(ctx context.Context, events []model.Event) error
	GetEvents(ctx context.Context, filter EventFilter) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) error

	// Receiving record cache.

	UpsertReceivingRecords(ctx context.Context, records []model.ReceivingRecord) error
	GetReceivingRecords(ctx context.Context, limit int) ([]model.ReceivingRecord, error)
	GetExpiringRecords(ctx context.Context, now time.Time, days int) ([]model.ReceivingRecord, error)

	// Waitlist submission log.

	SaveWaitlistEntry(ctx context.Context, entry model.WaitlistEntry) error
	GetWaitlistEntries(ctx context.Context) ([]model.WaitlistEntry, error)
}
