// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies bearer tokens issued by the identity service.

# Tokens

Tokens are HS256 JWTs carrying the user id as "sub" and a role claim:

	{"sub": "100", "role": "Learner", "exp": 1760000000}

Roles are Admin and Learner. Issuing tokens is not this service's job;
it only verifies them.

# Usage

	raw, err := auth.BearerToken(r.Header.Get("Authorization"))
	id, err := auth.ParseToken(raw, cfg.JWTSecret)
	if id.IsAdmin() { ... }

Both failures wrap ErrMissingToken or ErrInvalidToken so handlers can
answer 401 without leaking details.
*/
package auth
