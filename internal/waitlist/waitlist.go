// Package waitlist handles landing-screen waitlist signups. The product
// backend has no waitlist endpoint yet, so submissions are simulated
// with a realistic failure rate and logged locally.
package waitlist

import (
	"context"
	"errors"
	"math/rand"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/store"
)

// ErrSubmitFailed is returned when the simulated submission fails; the
// caller should offer a retry.
var ErrSubmitFailed = errors.New("waitlist submission failed, please try again")

// successRate is the fraction of simulated submissions that succeed.
const successRate = 0.9

// Submitter validates and records waitlist signups.
type Submitter struct {
	store store.Store
	rng   *rand.Rand
}

// New creates a Submitter seeded from the current time.
func New(s store.Store) *Submitter {
	return NewWithSource(s, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a Submitter with an explicit randomness source.
// Tests use a fixed source to exercise both outcomes deterministically.
func NewWithSource(s store.Store, src rand.Source) *Submitter {
	return &Submitter{store: s, rng: rand.New(src)}
}

// Validate checks a signup before submission. Name and a well-formed
// email address are required; role and message are optional.
func Validate(entry model.WaitlistEntry) error {
	if strings.TrimSpace(entry.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(entry.Email); err != nil {
		return errors.New("a valid email address is required")
	}
	return nil
}

// Submit validates the entry and performs the simulated submission,
// logging it locally on success.
func (s *Submitter) Submit(ctx context.Context, entry model.WaitlistEntry) error {
	if err := Validate(entry); err != nil {
		return err
	}

	if s.rng.Float64() >= successRate {
		return ErrSubmitFailed
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	if s.store != nil {
		if err := s.store.SaveWaitlistEntry(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
