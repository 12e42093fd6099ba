// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-form/cliparse"
	"github.com/danielhkuo/quickly-form/formstore"
	"github.com/danielhkuo/quickly-form/handlers"
	"github.com/danielhkuo/quickly-form/middleware"
	"github.com/danielhkuo/quickly-form/models"
)

func NewRouter(db *sql.DB, forms formstore.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	responseHandler := handlers.NewResponseHandler(db, forms)
	formHandler := handlers.NewFormHandler(forms)
	assignmentHandler := handlers.NewAssignmentHandler(db, forms)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(cfg.JWTSecret, models.RoleAdmin)(h))
	}
	anyone := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(cfg.JWTSecret, models.RoleAdmin, models.RoleLearner)(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Submissions
	mux.HandleFunc("POST /responses/{formKey}", anyone(responseHandler.Submit))
	mux.HandleFunc("GET /responses/{formKey}", anyone(responseHandler.ListResponses))
	mux.HandleFunc("GET /submissions/mine", anyone(responseHandler.ListMine))
	mux.HandleFunc("GET /submissions/{responseId}", anyone(responseHandler.GetDetail))
	mux.HandleFunc("GET /files/{fileId}", anyone(responseHandler.GetFile))

	// Form administration
	mux.HandleFunc("GET /forms/published", admin(formHandler.ListPublished))
	mux.HandleFunc("GET /forms/{formKey}/responses", admin(responseHandler.ListFormSubmissions))

	// Assignments
	mux.HandleFunc("POST /forms/{formKey}/assignments", admin(assignmentHandler.Assign))
	mux.HandleFunc("GET /forms/{formKey}/assignments", admin(assignmentHandler.ListAssignees))
	mux.HandleFunc("DELETE /forms/{formKey}/assignments/{userId}", admin(assignmentHandler.Unassign))
	mux.HandleFunc("GET /assignments/mine", anyone(assignmentHandler.ListMine))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-form API v1"))
	})

	return mux
}
