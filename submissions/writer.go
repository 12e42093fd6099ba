// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submissions

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/fields"
	"github.com/danielhkuo/quickly-form/models"
)

// Execer is the subset of *sql.DB and *sql.Tx the parent key step needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// EnsureFormKey inserts the parent row that form_responses.form_key
// references, doing nothing if it already exists. Form keys are minted by
// the form builder, so the first submission against a new form is the
// first time this store sees the key.
func EnsureFormKey(ctx context.Context, ex Execer, formKey int, formID string) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO form_keys (form_key, form_id)
		VALUES ($1, $2)
		ON CONFLICT (form_key) DO NOTHING
	`, formKey, formID)
	if err != nil {
		return fmt.Errorf("failed to ensure form key %d: %w", formKey, err)
	}
	return nil
}

// Submission is one validated, encoded payload ready to persist.
type Submission struct {
	FormID  string
	FormKey int
	UserID  int64
	Answers []fields.Encoded
}

type Writer struct {
	db  *sql.DB
	now func() time.Time
}

func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db, now: time.Now}
}

// WithClock replaces the submission timestamp source.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Write stores the header, any files, and one answer row per answer in a
// single transaction and returns the header id. Nothing is visible unless
// every insert succeeds.
func (w *Writer) Write(ctx context.Context, sub Submission) (int64, error) {
	id, err := w.write(ctx, sub)
	if err != nil {
		return 0, apperr.Wrap(apperr.Persistence, "failed to save submission", err)
	}
	return id, nil
}

func (w *Writer) write(ctx context.Context, sub Submission) (int64, error) {
	submittedAt := w.now().UTC().Truncate(time.Microsecond)

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := EnsureFormKey(ctx, tx, sub.FormKey, sub.FormID); err != nil {
		return 0, err
	}

	var headerID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO form_responses (form_id, form_key, user_id, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sub.FormID, sub.FormKey, sub.UserID, submittedAt).Scan(&headerID)
	if err != nil {
		return 0, fmt.Errorf("insert header: %w", err)
	}

	for _, a := range sub.Answers {
		value := a.Value
		if a.File != nil {
			var fileID int64
			err = tx.QueryRowContext(ctx, `
				INSERT INTO form_response_files
					(response_id, form_key, field_id, file_name, content_type, size_bytes, content, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id
			`, headerID, sub.FormKey, a.FieldID, a.File.Name, a.File.ContentType,
				int64(len(a.File.Data)), a.File.Data, submittedAt).Scan(&fileID)
			if err != nil {
				return 0, fmt.Errorf("insert file for %s: %w", a.FieldID, err)
			}
			value = models.FileTokenPrefix + strconv.FormatInt(fileID, 10)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO form_response_answers
				(response_id, form_key, user_id, field_id, field_type, answer_value, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, headerID, sub.FormKey, sub.UserID, a.FieldID, a.Tag, value, submittedAt)
		if err != nil {
			return 0, fmt.Errorf("insert answer for %s: %w", a.FieldID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return headerID, nil
}
