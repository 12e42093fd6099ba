// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/quickly-form/models"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the token payload issued by the identity service: the user id
// in "sub" and the role in "role".
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the caller as established from a verified token.
type Identity struct {
	UserID int64
	Role   string
}

func (i Identity) IsAdmin() bool {
	return strings.EqualFold(i.Role, models.RoleAdmin)
}

// HasRole reports whether the identity holds any of the roles.
func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(i.Role, r) {
			return true
		}
	}
	return false
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// ParseToken verifies an HS256 token and returns the caller identity.
func ParseToken(raw, secret string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}
	if claims.Role == "" {
		return Identity{}, fmt.Errorf("%w: missing role", ErrInvalidToken)
	}

	return Identity{UserID: userID, Role: claims.Role}, nil
}
