// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fields

import (
	"strings"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/models"
)

// Validate checks one answer against its field definition.
func Validate(f models.Field, a models.AnswerInput) error {
	return KindOf(f.Type).validate(f, a)
}

// Encode converts one validated answer into its storable form. It does no
// I/O.
func Encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	return KindOf(f.Type).encode(f, a)
}

// Prepare validates every answer against the lookup and only then encodes
// them, in submission order. The first violation aborts the whole batch.
func Prepare(lookup map[string]models.Field, answers []models.AnswerInput) ([]Encoded, error) {
	if len(answers) == 0 {
		return nil, apperr.New(apperr.EmptySubmission, "No answers provided.")
	}

	for _, a := range answers {
		if strings.TrimSpace(a.FieldID) == "" {
			return nil, apperr.New(apperr.UnknownField, "Each answer must include fieldId.")
		}
		f, ok := lookup[a.FieldID]
		if !ok {
			return nil, apperr.New(apperr.UnknownField, "Unknown field: %s", a.FieldID)
		}
		if err := Validate(f, a); err != nil {
			return nil, err
		}
	}

	out := make([]Encoded, 0, len(answers))
	for _, a := range answers {
		enc, err := Encode(lookup[a.FieldID], a)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}
