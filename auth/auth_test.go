// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-jwt-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return raw
}

func validClaims(sub, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParseToken(t *testing.T) {
	raw := sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("100", "Learner"))

	id, err := ParseToken(raw, testSecret)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if id.UserID != 100 {
		t.Errorf("expected user 100, got %d", id.UserID)
	}
	if id.IsAdmin() {
		t.Error("learner should not be admin")
	}
	if !id.HasRole("admin", "learner") {
		t.Error("role match should ignore case")
	}
}

func TestParseTokenRejects(t *testing.T) {
	expired := validClaims("1", "Admin")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name string
		raw  string
	}{
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims("1", "Admin"))},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"non numeric subject", sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("alice", "Admin"))},
		{"zero subject", sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("0", "Admin"))},
		{"missing role", sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("1", ""))},
		{"other algorithm", sign(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims("1", "Admin"))},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.raw, testSecret)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer   abc", "abc", false},
		{"Basic abc", "", true},
		{"Bearer ", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := BearerToken(tt.header)
		if tt.wantErr {
			if !errors.Is(err, ErrMissingToken) {
				t.Errorf("BearerToken(%q): expected ErrMissingToken, got %v", tt.header, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("BearerToken(%q) = %q, %v; want %q", tt.header, got, err, tt.want)
		}
	}
}
