// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submissions

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/quickly-form/fields"
	"github.com/danielhkuo/quickly-form/models"
)

// Service runs the submit pipeline: resolve → validate/encode → write.
//
// The schema is read from the form store before the relational
// transaction starts and is not part of it. A form unpublished between
// those two steps still accepts the submission, since the answers were
// already validated against the snapshot that was resolved.
type Service struct {
	resolver *Resolver
	writer   *Writer
}

func NewService(resolver *Resolver, writer *Writer) *Service {
	return &Service{resolver: resolver, writer: writer}
}

// Submit validates answers against the published form and stores them,
// returning the new submission id. Any failure leaves no rows behind.
func (s *Service) Submit(ctx context.Context, formKey int, userID int64, answers []models.AnswerInput) (int64, error) {
	schema, err := s.resolver.Resolve(ctx, formKey)
	if err != nil {
		return 0, err
	}

	encoded, err := fields.Prepare(schema.Fields, answers)
	if err != nil {
		return 0, err
	}

	id, err := s.writer.Write(ctx, Submission{
		FormID:  schema.FormID,
		FormKey: schema.FormKey,
		UserID:  userID,
		Answers: encoded,
	})
	if err != nil {
		return 0, err
	}

	slog.Info("submission saved", "response_id", id, "form_key", schema.FormKey, "form_title", schema.Title, "user_id", userID, "answers", len(encoded))
	return id, nil
}
