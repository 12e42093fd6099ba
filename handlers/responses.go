// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/formstore"
	"github.com/danielhkuo/quickly-form/middleware"
	"github.com/danielhkuo/quickly-form/models"
	"github.com/danielhkuo/quickly-form/submissions"
)

type ResponseHandler struct {
	service *submissions.Service
	reader  *submissions.Reader
}

func NewResponseHandler(db *sql.DB, forms formstore.Store) *ResponseHandler {
	return &ResponseHandler{
		service: submissions.NewService(submissions.NewResolver(forms), submissions.NewWriter(db)),
		reader:  submissions.NewReader(db),
	}
}

// Submit handles POST /responses/{formKey}
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	formKey, err := strconv.Atoi(r.PathValue("formKey"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "formKey must be an integer")
		return
	}

	var req models.SubmitRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	responseID, err := h.service.Submit(r.Context(), formKey, id.UserID, req.Answers)
	if err != nil {
		if apperr.ClassOf(err) == apperr.ClassValidation {
			slog.Info("submission rejected", "form_key", formKey, "user_id", id.UserID, "code", apperr.CodeOf(err))
		}
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		ResponseID: responseID,
		Message:    "Submitted",
	})
}

// ListResponses handles GET /responses/{formKey}?userId=
// Learners only ever see their own rows, whatever userId says.
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	formKey, err := strconv.Atoi(r.PathValue("formKey"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "formKey must be an integer")
		return
	}

	var userID *int64
	if !id.IsAdmin() {
		userID = &id.UserID
	} else if q := r.URL.Query().Get("userId"); q != "" {
		parsed, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "userId must be an integer")
			return
		}
		userID = &parsed
	}

	rows, err := h.reader.ListByForm(r.Context(), formKey, userID)
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.Persistence, "failed to list responses", err))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rows)
}

// ListFormSubmissions handles GET /forms/{formKey}/responses
func (h *ResponseHandler) ListFormSubmissions(w http.ResponseWriter, r *http.Request) {
	formKey, err := strconv.Atoi(r.PathValue("formKey"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "formKey must be an integer")
		return
	}

	headers, err := h.reader.ListHeadersByForm(r.Context(), formKey)
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.Persistence, "failed to list submissions", err))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, headers)
}

// ListMine handles GET /submissions/mine
func (h *ResponseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	headers, err := h.reader.ListHeadersByUser(r.Context(), id.UserID)
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.Persistence, "failed to list submissions", err))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, headers)
}

// GetDetail handles GET /submissions/{responseId}
func (h *ResponseHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	responseID, err := strconv.ParseInt(r.PathValue("responseId"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "responseId must be an integer")
		return
	}

	detail, err := h.reader.GetDetail(r.Context(), responseID)
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.Persistence, "failed to load submission", err))
		return
	}
	if detail == nil {
		middleware.WriteError(w, r, apperr.New(apperr.NotFound, "Response not found."))
		return
	}
	if !id.IsAdmin() && detail.Header.UserID != id.UserID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only view your own submissions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// GetFile handles GET /files/{fileId}
func (h *ResponseHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	fileID, err := strconv.ParseInt(r.PathValue("fileId"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fileId must be an integer")
		return
	}

	file, ownerID, err := h.reader.GetFile(r.Context(), fileID)
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.Persistence, "failed to load file", err))
		return
	}
	if file == nil {
		middleware.WriteError(w, r, apperr.New(apperr.NotFound, "File not found."))
		return
	}
	if !id.IsAdmin() && ownerID != id.UserID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only download your own files")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Blob); err != nil {
		slog.Error("failed to write file", "file_id", fileID, "error", err)
	}
}
