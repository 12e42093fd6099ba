// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Assigns a request id (X-Request-ID, reused if the client sent one) and
logs method, path, status and duration_ms on completion.

# Authentication

	mux.HandleFunc("GET /forms/published",
		middleware.WithLogging(middleware.RequireRole(secret, models.RoleAdmin)(h)))

RequireRole verifies the bearer token and stores the identity in the
request context; handlers read it back with IdentityFrom.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type,
Authorization, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

DecodeAndValidate caps the body size, decodes JSON and runs struct tag
validation, returning a single readable error.

# Errors

WriteError maps an apperr code to its HTTP status (StatusFor). Storage
failures are logged and reported as "Internal server error".
*/
package middleware
