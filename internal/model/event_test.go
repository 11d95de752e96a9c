package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"pending":        StatusPending,
		"in_progress":    StatusInProgress,
		"in progress":    StatusInProgress,
		"In Progress":    StatusInProgress,
		"completed":      StatusCompleted,
		"done":           StatusCompleted,
		"scheduled":      StatusScheduled,
		"cancelled":      StatusCancelled,
		"canceled":       StatusCancelled,
		"pending review": StatusPendingReview,
		"on hold":        StatusOnHold,
		"  done  ":       StatusCompleted,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), "input %q", in)
	}
}

func TestNormalizeStatusUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "fermenting", NormalizeStatus("fermenting"))
	assert.Equal(t, "weird value", NormalizeStatus("  weird value "))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JS", Event{Assignee: "Jamie Smith"}.Initials())
	assert.Equal(t, "J", Event{Assignee: "jamie"}.Initials())
	assert.Equal(t, "JS", Event{Assignee: "Jamie Smith Junior"}.Initials())
	assert.Equal(t, "", Event{}.Initials())
	assert.Equal(t, "", Event{Assignee: "   "}.Initials())
}

func TestZeroDuration(t *testing.T) {
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	assert.True(t, Event{Start: start, End: start}.ZeroDuration())
	assert.True(t, Event{Start: start, End: start.Add(-time.Minute)}.ZeroDuration())
	assert.False(t, Event{Start: start, End: start.Add(time.Hour)}.ZeroDuration())
}

func TestReceivingRecordExpiresWithin(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	soon := ReceivingRecord{ExpiryDate: now.AddDate(0, 0, 2)}
	assert.True(t, soon.ExpiresWithin(now, 3))

	later := ReceivingRecord{ExpiryDate: now.AddDate(0, 0, 10)}
	assert.False(t, later.ExpiresWithin(now, 3))

	expired := ReceivingRecord{ExpiryDate: now.AddDate(0, 0, -1)}
	assert.True(t, expired.ExpiresWithin(now, 3))

	none := ReceivingRecord{}
	assert.False(t, none.ExpiresWithin(now, 3))
}

func TestStaffDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Kaya", StaffMember{FirstName: "Ada", LastName: "Kaya"}.DisplayName())
	assert.Equal(t, "akaya", StaffMember{Username: "akaya"}.DisplayName())
	assert.Equal(t, "Ada", StaffMember{FirstName: "Ada", Username: "akaya"}.DisplayName())
}
