// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/quickly-form/auth"
	"github.com/danielhkuo/quickly-form/cliparse"
	"github.com/danielhkuo/quickly-form/db"
	"github.com/danielhkuo/quickly-form/models"
)

// TestJWTSecret signs every token minted by MakeToken
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh sqlite database with the full schema. The
// file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(context.Background(), conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "test.db",
		DatabaseType:  db.TypeSQLite,
		JWTSecret:     TestJWTSecret,
		MongoDatabase: cliparse.DefaultMongoDatabase,
		FormsFile:     "forms.yaml",
	}
}

// SampleForm builds a form with one field of each family:
//
//	age    number, required
//	dept   radio D1/D2, optional
//	skills checkbox S1/S2/S3, optional
//	bio    textarea, optional
//	joined date, optional
//	cv     file, optional
func SampleForm(formKey int, status string) models.Form {
	return models.Form{
		ID:      "form-" + strconv.Itoa(formKey),
		FormKey: formKey,
		Title:   "Onboarding",
		Status:  status,
		Sections: []models.Section{
			{
				SectionID: "s1",
				Title:     "About you",
				Fields: []models.Field{
					{FieldID: "age", Label: "Age", Type: "number", Required: true},
					{FieldID: "dept", Label: "Department", Type: "radio", Options: []models.Option{
						{ID: "D1", Text: "Engineering"},
						{ID: "D2", Text: "Sales"},
					}},
					{FieldID: "skills", Label: "Skills", Type: "checkbox", Options: []models.Option{
						{ID: "S1", Text: "Go"},
						{ID: "S2", Text: "SQL"},
						{ID: "S3", Text: "Ops"},
					}},
				},
			},
			{
				SectionID: "s2",
				Title:     "Details",
				Fields: []models.Field{
					{FieldID: "bio", Label: "Bio", Type: "textarea"},
					{FieldID: "joined", Label: "Joined", Type: "date"},
					{FieldID: "cv", Label: "CV", Type: "file"},
				},
			},
		},
	}
}

// MakeToken signs an HS256 token for the user and role with TestJWTSecret
func MakeToken(t *testing.T, userID int64, role string) string {
	t.Helper()

	claims := auth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return raw
}

// AuthHeader returns request headers carrying a bearer token for the user
func AuthHeader(t *testing.T, userID int64, role string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + MakeToken(t, userID, role)}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
