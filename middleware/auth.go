// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-form/auth"
)

type identityKey struct{}

// IdentityFrom returns the caller placed in the context by RequireRole.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// WithIdentity stores the caller in ctx.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// RequireRole verifies the bearer token and admits callers holding one of
// roles. Missing or bad tokens get 401, other roles 403.
func RequireRole(secret string, roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
				return
			}

			id, err := auth.ParseToken(raw, secret)
			if err != nil {
				slog.Warn("rejected token", "request_id", RequestID(r.Context()), "error", err)
				ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if !id.HasRole(roles...) {
				ErrorResponse(w, http.StatusForbidden, "Insufficient role")
				return
			}

			next(w, r.WithContext(WithIdentity(r.Context(), id)))
		}
	}
}
