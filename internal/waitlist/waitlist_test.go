package waitlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/waitlist"
	"github.com/prepline/prepline/tests/testutil"
)

// constSource pins the submission roll. Zero always lands below the
// success threshold; highRoll always lands above it.
type constSource struct{ v int64 }

func (s constSource) Int63() int64 { return s.v }
func (s constSource) Seed(int64)   {}

// highRoll maps to Float64() == 0.9375.
const highRoll = int64(15) << 59

func validEntry() model.WaitlistEntry {
	return model.WaitlistEntry{
		Name:  "Ada Kaya",
		Email: "ada@example.com",
		Role:  "head_chef",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, waitlist.Validate(validEntry()))

	missing := validEntry()
	missing.Name = "  "
	assert.EqualError(t, waitlist.Validate(missing), "name is required")

	bad := validEntry()
	bad.Email = "not-an-address"
	assert.EqualError(t, waitlist.Validate(bad), "a valid email address is required")
}

func TestSubmitSuccessLogsEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	sub := waitlist.NewWithSource(s, constSource{0})

	err := sub.Submit(context.Background(), validEntry())
	require.NoError(t, err)

	entries, err := s.GetWaitlistEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada Kaya", entries[0].Name)
	assert.Equal(t, "head_chef", entries[0].Role)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	s := testutil.NewTestStore(t)
	sub := waitlist.NewWithSource(s, constSource{highRoll})

	err := sub.Submit(context.Background(), validEntry())
	assert.ErrorIs(t, err, waitlist.ErrSubmitFailed)

	entries, err := s.GetWaitlistEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries, "failed submissions are not logged")
}

func TestSubmitValidatesBeforeRolling(t *testing.T) {
	sub := waitlist.NewWithSource(nil, constSource{0})

	bad := validEntry()
	bad.Email = "nope"
	err := sub.Submit(context.Background(), bad)

	require.Error(t, err)
	assert.NotErrorIs(t, err, waitlist.ErrSubmitFailed)
}
