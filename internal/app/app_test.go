package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prepline/prepline/internal/model"
)

func TestCoverKeyMatchesFetchedAndExpandedIDs(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// A backend instance ID and the derived expansion ID for the same
	// item and day must collide so the expansion is dropped.
	fetched := coverKey("item-1", day)
	expanded := coverKey("item-1:2026-03-10", day)
	assert.Equal(t, fetched, expanded)

	otherDay := coverKey("item-1", day.AddDate(0, 0, 1))
	assert.NotEqual(t, fetched, otherDay)

	otherItem := coverKey("item-2", day)
	assert.NotEqual(t, fetched, otherItem)
}

func TestStaffResources(t *testing.T) {
	staff := []model.StaffMember{
		{ID: "s-1", FirstName: "Ada", LastName: "Kaya"},
		{ID: "s-2", Username: "klee"},
	}

	resources := staffResources(staff)
	assert.Equal(t, []model.Resource{
		{ID: "s-1", Title: "Ada Kaya"},
		{ID: "s-2", Title: "klee"},
	}, resources)

	assert.Nil(t, staffResources(nil))
}
