// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/assignments"
	"github.com/danielhkuo/quickly-form/formstore"
	"github.com/danielhkuo/quickly-form/middleware"
	"github.com/danielhkuo/quickly-form/models"
)

type AssignmentHandler struct {
	seq   *assignments.Sequencer
	forms formstore.Store
}

func NewAssignmentHandler(db *sql.DB, forms formstore.Store) *AssignmentHandler {
	return &AssignmentHandler{
		seq:   assignments.NewSequencer(assignments.NewSQLStore(db)),
		forms: forms,
	}
}

// formFor resolves the {formKey} path value to the form document.
// Assignments do not require the form to be published.
func (h *AssignmentHandler) formFor(r *http.Request) (*models.Form, error) {
	formKey, err := strconv.Atoi(r.PathValue("formKey"))
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "Form not found.")
	}
	form, err := h.forms.GetByFormKey(r.Context(), formKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to load form", err)
	}
	if form == nil {
		return nil, apperr.New(apperr.NotFound, "Form not found.")
	}
	return form, nil
}

// Assign handles POST /forms/{formKey}/assignments
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var req models.AssignRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.formFor(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	assignedBy := id.UserID
	a, err := h.seq.Assign(r.Context(), form.ID, req.UserID, &assignedBy)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, a)
}

// Unassign handles DELETE /forms/{formKey}/assignments/{userId}
func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId must be an integer")
		return
	}

	form, err := h.formFor(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	removed, err := h.seq.Unassign(r.Context(), form.ID, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UnassignResponse{Removed: removed})
}

// ListAssignees handles GET /forms/{formKey}/assignments
func (h *AssignmentHandler) ListAssignees(w http.ResponseWriter, r *http.Request) {
	form, err := h.formFor(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	list, err := h.seq.ListAssignees(r.Context(), form.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// ListMine handles GET /assignments/mine
func (h *AssignmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	list, err := h.seq.ListForUser(r.Context(), id.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}
