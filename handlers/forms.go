// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/formstore"
	"github.com/danielhkuo/quickly-form/middleware"
	"github.com/danielhkuo/quickly-form/models"
)

type FormHandler struct {
	forms formstore.Store
}

func NewFormHandler(forms formstore.Store) *FormHandler {
	return &FormHandler{forms: forms}
}

// ListPublished handles GET /forms/published
func (h *FormHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	forms, err := h.forms.ListPublished(r.Context())
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.Persistence, "failed to list forms", err))
		return
	}

	out := make([]models.PublishedForm, 0, len(forms))
	for _, f := range forms {
		out = append(out, models.PublishedForm{
			FormKey:     f.FormKey,
			Title:       f.Title,
			Description: f.Description,
			PublishedAt: f.PublishedAt,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}
