// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignments

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/models"
)

// DefaultPolicy retries sequence conflicts three times, 25ms apart.
var DefaultPolicy = Policy{
	Attempts:  3,
	Delay:     25 * time.Millisecond,
	Retryable: func(err error) bool { return errors.Is(err, ErrSequenceConflict) },
}

// Sequencer hands out per-form sequence numbers without locking the form.
// It reads the current maximum, proposes max+1, and retries when a
// concurrent assign takes that number first. Numbers from failed attempts
// are not reused, so sequences may have gaps.
type Sequencer struct {
	store  Store
	policy Policy
	now    func() time.Time
}

func NewSequencer(store Store) *Sequencer {
	return &Sequencer{store: store, policy: DefaultPolicy, now: time.Now}
}

// WithPolicy replaces the retry policy.
func (s *Sequencer) WithPolicy(p Policy) *Sequencer {
	s.policy = p
	return s
}

// WithClock replaces the assigned_at source.
func (s *Sequencer) WithClock(now func() time.Time) *Sequencer {
	s.now = now
	return s
}

// Assign gives the user the next sequence number on the form. Assigning
// someone twice fails with AlreadyAssigned rather than returning the
// existing row.
func (s *Sequencer) Assign(ctx context.Context, formID string, userID int64, assignedBy *int64) (*models.Assignment, error) {
	exists, err := s.store.Exists(ctx, formID, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to check assignment", err)
	}
	if exists {
		return nil, alreadyAssigned()
	}

	attempt := 0
	a, err := Retry(ctx, s.policy, func(ctx context.Context) (*models.Assignment, error) {
		attempt++
		seq, err := s.store.MaxSequence(ctx, formID)
		if err != nil {
			return nil, err
		}

		a, err := s.store.Insert(ctx, models.Assignment{
			FormID:     formID,
			UserID:     userID,
			AssignedBy: assignedBy,
			AssignedAt: s.now().UTC().Truncate(time.Microsecond),
			SequenceNo: seq + 1,
		})
		if !errors.Is(err, ErrSequenceConflict) {
			return a, err
		}

		// The conflict may be on (form, user) rather than the sequence:
		// a concurrent call assigned the same user.
		exists, checkErr := s.store.Exists(ctx, formID, userID)
		if checkErr != nil {
			return nil, apperr.Wrap(apperr.Persistence, "failed to check assignment", checkErr)
		}
		if exists {
			return nil, alreadyAssigned()
		}
		slog.Warn("assignment sequence conflict", "form_id", formID, "user_id", userID, "sequence_no", seq+1, "attempt", attempt)
		return nil, err
	})

	switch {
	case err == nil:
		slog.Info("user assigned", "form_id", formID, "user_id", userID, "sequence_no", a.SequenceNo)
		return a, nil
	case errors.Is(err, apperr.ErrAlreadyAssigned), errors.Is(err, apperr.ErrPersistence):
		return nil, err
	case errors.Is(err, ErrRetriesExhausted):
		return nil, apperr.Wrap(apperr.AssignmentFailedAfterRetries, "Could not allocate a sequence number, please retry.", err)
	default:
		return nil, apperr.Wrap(apperr.Persistence, "failed to assign user", err)
	}
}

// Unassign removes the user from the form and reports whether a row was
// deleted.
func (s *Sequencer) Unassign(ctx context.Context, formID string, userID int64) (bool, error) {
	removed, err := s.store.Delete(ctx, formID, userID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to unassign user", err)
	}
	return removed, nil
}

// ListAssignees returns the form's assignments in sequence order.
func (s *Sequencer) ListAssignees(ctx context.Context, formID string) ([]models.Assignment, error) {
	out, err := s.store.ListByForm(ctx, formID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to list assignees", err)
	}
	return out, nil
}

// ListForUser returns the user's assignments, most recent first.
func (s *Sequencer) ListForUser(ctx context.Context, userID int64) ([]models.Assignment, error) {
	out, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to list assignments", err)
	}
	return out, nil
}

func (s *Sequencer) IsAssigned(ctx context.Context, formID string, userID int64) (bool, error) {
	ok, err := s.store.Exists(ctx, formID, userID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to check assignment", err)
	}
	return ok, nil
}

func (s *Sequencer) HasAnyAssignments(ctx context.Context, formID string) (bool, error) {
	ok, err := s.store.HasAny(ctx, formID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to check assignments", err)
	}
	return ok, nil
}

func alreadyAssigned() error {
	return apperr.New(apperr.AlreadyAssigned, "User is already assigned to this form.")
}
