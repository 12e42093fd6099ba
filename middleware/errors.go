// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/models"
)

// StatusFor maps an error to its HTTP status. An unknown field is reported
// as a missing resource rather than a bad request.
func StatusFor(err error) int {
	if apperr.CodeOf(err) == apperr.UnknownField {
		return http.StatusNotFound
	}
	switch apperr.ClassOf(err) {
	case apperr.ClassValidation:
		return http.StatusBadRequest
	case apperr.ClassNotFound:
		return http.StatusNotFound
	case apperr.ClassNotPublished, apperr.ClassConflict:
		return http.StatusConflict
	case apperr.ClassTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error response. Validation messages go
// to the caller verbatim; storage failures are logged and hidden.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := apperr.CodeOf(err)

	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", RequestID(r.Context()),
			"path", r.URL.Path,
			"code", code,
			"error", err,
		)
	}
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	JSONResponse(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Code:    string(code),
		Message: message,
	})
}
