// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submissions

import (
	"context"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/formstore"
	"github.com/danielhkuo/quickly-form/models"
)

// Schema is the published snapshot a submission is validated against.
type Schema struct {
	FormID  string
	FormKey int
	Title   string
	Fields  map[string]models.Field
}

type Resolver struct {
	forms formstore.Store
}

func NewResolver(forms formstore.Store) *Resolver {
	return &Resolver{forms: forms}
}

// Resolve loads the form on every call; there is no cache, so a republished
// form is picked up by the next submission.
func (r *Resolver) Resolve(ctx context.Context, formKey int) (*Schema, error) {
	form, err := r.forms.GetByFormKey(ctx, formKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to load form", err)
	}
	if form == nil {
		return nil, apperr.New(apperr.NotFound, "Form not found.")
	}
	if !form.IsPublished() {
		return nil, apperr.New(apperr.NotPublished, "Form is not published.")
	}

	lookup := make(map[string]models.Field)
	for _, sec := range form.Sections {
		for _, f := range sec.Fields {
			lookup[f.FieldID] = f
		}
	}

	key := form.FormKey
	if key == 0 {
		key = formKey
	}
	return &Schema{
		FormID:  form.ID,
		FormKey: key,
		Title:   form.Title,
		Fields:  lookup,
	}, nil
}
