// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-form/db"
	"github.com/danielhkuo/quickly-form/models"
)

// ErrSequenceConflict means an insert lost a race on one of the
// assignment uniqueness constraints.
var ErrSequenceConflict = errors.New("assignment uniqueness conflict")

// Store is the persistence port the Sequencer needs.
type Store interface {
	Exists(ctx context.Context, formID string, userID int64) (bool, error)
	HasAny(ctx context.Context, formID string) (bool, error)
	MaxSequence(ctx context.Context, formID string) (int, error)
	Insert(ctx context.Context, a models.Assignment) (*models.Assignment, error)
	Delete(ctx context.Context, formID string, userID int64) (bool, error)
	ListByForm(ctx context.Context, formID string) ([]models.Assignment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Assignment, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Exists(ctx context.Context, formID string, userID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM form_assignments WHERE form_id = $1 AND user_id = $2)
	`, formID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

func (s *SQLStore) HasAny(ctx context.Context, formID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM form_assignments WHERE form_id = $1)
	`, formID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignments: %w", err)
	}
	return exists, nil
}

// MaxSequence returns the highest sequence number for the form, 0 if none.
func (s *SQLStore) MaxSequence(ctx context.Context, formID string) (int, error) {
	var seq int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(sequence_no), 0) FROM form_assignments WHERE form_id = $1
	`, formID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to read max sequence: %w", err)
	}
	return seq, nil
}

// Insert stores the assignment and returns it with its id. Uniqueness
// violations come back as ErrSequenceConflict.
func (s *SQLStore) Insert(ctx context.Context, a models.Assignment) (*models.Assignment, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO form_assignments (form_id, user_id, assigned_by, assigned_at, sequence_no)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.FormID, a.UserID, a.AssignedBy, a.AssignedAt, a.SequenceNo).Scan(&a.ID)
	if db.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: form %s sequence %d", ErrSequenceConflict, a.FormID, a.SequenceNo)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}
	return &a, nil
}

func (s *SQLStore) Delete(ctx context.Context, formID string, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM form_assignments WHERE form_id = $1 AND user_id = $2
	`, formID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read deleted rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLStore) ListByForm(ctx context.Context, formID string) ([]models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, user_id, assigned_by, assigned_at, sequence_no
		FROM form_assignments
		WHERE form_id = $1
		ORDER BY sequence_no ASC
	`, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignees: %w", err)
	}
	return scanAssignments(rows)
}

func (s *SQLStore) ListByUser(ctx context.Context, userID int64) ([]models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, user_id, assigned_by, assigned_at, sequence_no
		FROM form_assignments
		WHERE user_id = $1
		ORDER BY assigned_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	return scanAssignments(rows)
}

func scanAssignments(rows *sql.Rows) ([]models.Assignment, error) {
	defer rows.Close()

	out := []models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.FormID, &a.UserID, &a.AssignedBy, &a.AssignedAt, &a.SequenceNo); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}
	return out, nil
}
