package model

import (
	"strings"
	"time"
)

// CleaningItem is a managed cleaning definition for a department. The
// backend materializes scheduled task instances from it; the client
// also expands its recurrence locally for calendar windows the backend
// has not materialized yet.
type CleaningItem struct {
	ID           string
	DepartmentID string
	Name         string
	Description  string

	// RecurrenceType is "daily", "weekly" or "monthly"; empty for
	// one-off items.
	RecurrenceType string

	Equipment  string
	AssigneeID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReceivingRecord is a goods-received entry.
type ReceivingRecord struct {
	ID          string
	Supplier    string
	Product     string
	Quantity    float64
	Unit        string
	Temperature float64
	ExpiryDate  time.Time
	ReceivedAt  time.Time
	Notes       string
	FetchedAt   time.Time
}

// ExpiresWithin reports whether the record's expiry date falls inside
// the next n days from now (inclusive of already-expired stock).
func (r ReceivingRecord) ExpiresWithin(now time.Time, days int) bool {
	if r.ExpiryDate.IsZero() {
		return false
	}
	return r.ExpiryDate.Before(now.AddDate(0, 0, days))
}

// StaffMember is a department staff entry used for resource lanes and
// assignee selection.
type StaffMember struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
}

// DisplayName returns "First Last", falling back to the username when
// both name parts are blank.
func (s StaffMember) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.Username
	}
	return name
}

// WaitlistEntry is a landing-page waitlist submission.
type WaitlistEntry struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Message   string
	CreatedAt time.Time
}
