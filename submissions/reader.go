// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-form/models"
)

// Reader lists persisted submissions. Ownership checks belong to callers.
type Reader struct {
	db *sql.DB
}

func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

const answerColumns = `id, response_id, form_key, user_id, field_id, field_type, answer_value, submitted_at`

// ListByForm returns answer rows for a form, newest submission first, with
// row id as the tie-break. A non-nil userID restricts rows to that user.
func (r *Reader) ListByForm(ctx context.Context, formKey int, userID *int64) ([]models.AnswerRow, error) {
	query := `SELECT ` + answerColumns + ` FROM form_response_answers WHERE form_key = $1`
	args := []any{formKey}
	if userID != nil {
		query += ` AND user_id = $2`
		args = append(args, *userID)
	}
	query += ` ORDER BY submitted_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	return scanAnswers(rows)
}

func (r *Reader) ListHeadersByForm(ctx context.Context, formKey int) ([]models.SubmissionHeader, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, form_id, form_key, user_id, submitted_at
		FROM form_responses
		WHERE form_key = $1
		ORDER BY submitted_at DESC, id DESC
	`, formKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query headers: %w", err)
	}
	return scanHeaders(rows)
}

func (r *Reader) ListHeadersByUser(ctx context.Context, userID int64) ([]models.SubmissionHeader, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, form_id, form_key, user_id, submitted_at
		FROM form_responses
		WHERE user_id = $1
		ORDER BY submitted_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query headers: %w", err)
	}
	return scanHeaders(rows)
}

// GetDetail returns the header and its answers, or nil if no header has
// the id.
func (r *Reader) GetDetail(ctx context.Context, responseID int64) (*models.ResponseDetail, error) {
	var h models.SubmissionHeader
	err := r.db.QueryRowContext(ctx, `
		SELECT id, form_id, form_key, user_id, submitted_at
		FROM form_responses
		WHERE id = $1
	`, responseID).Scan(&h.ID, &h.FormID, &h.FormKey, &h.UserID, &h.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query header: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+answerColumns+`
		FROM form_response_answers
		WHERE response_id = $1
		ORDER BY id
	`, responseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	answers, err := scanAnswers(rows)
	if err != nil {
		return nil, err
	}

	return &models.ResponseDetail{Header: h, Answers: answers}, nil
}

// GetFile returns a stored file and the user who submitted it, or nil if
// the file does not exist.
func (r *Reader) GetFile(ctx context.Context, fileID int64) (*models.StoredFile, int64, error) {
	var f models.StoredFile
	var ownerID int64
	err := r.db.QueryRowContext(ctx, `
		SELECT f.id, f.response_id, f.form_key, f.field_id, f.file_name, f.content_type,
		       f.size_bytes, f.content, f.created_at, r.user_id
		FROM form_response_files f
		JOIN form_responses r ON r.id = f.response_id
		WHERE f.id = $1
	`, fileID).Scan(&f.ID, &f.ResponseID, &f.FormKey, &f.FieldID, &f.FileName, &f.ContentType,
		&f.SizeBytes, &f.Blob, &f.CreatedAt, &ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query file: %w", err)
	}
	return &f, ownerID, nil
}

func scanAnswers(rows *sql.Rows) ([]models.AnswerRow, error) {
	defer rows.Close()

	out := []models.AnswerRow{}
	for rows.Next() {
		var a models.AnswerRow
		if err := rows.Scan(&a.ID, &a.ResponseID, &a.FormKey, &a.UserID, &a.FieldID,
			&a.FieldType, &a.AnswerValue, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return out, nil
}

func scanHeaders(rows *sql.Rows) ([]models.SubmissionHeader, error) {
	defer rows.Close()

	out := []models.SubmissionHeader{}
	for rows.Next() {
		var h models.SubmissionHeader
		if err := rows.Scan(&h.ID, &h.FormID, &h.FormKey, &h.UserID, &h.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan header: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}
	return out, nil
}
