// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/models"
	"github.com/danielhkuo/quickly-form/testutil"
)

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"response_id":1}`},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/responses/7", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	var seen string
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/", nil))

	header := w.Header().Get(RequestIDHeader)
	if header == "" || header != seen {
		t.Errorf("expected generated id in header and context, got %q and %q", header, seen)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = httptest.NewRecorder()
	handler(w, req)
	if seen != "upstream-id" || w.Header().Get(RequestIDHeader) != "upstream-id" {
		t.Errorf("expected upstream id to be kept, got %q", seen)
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "created response",
			statusCode: http.StatusCreated,
			data:       models.SubmitResponse{ResponseID: 12, Message: "Submitted"},
			expected:   `{"response_id":12,"message":"Submitted"}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"a", "b", "c"},
			expected:   `["a","b","c"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"required", apperr.Field(apperr.RequiredFieldMissing, "Age", "'Age' is required."), http.StatusBadRequest, "RequiredFieldMissing", "'Age' is required."},
		{"format", apperr.New(apperr.FieldFormatInvalid, "'Age' must be an integer."), http.StatusBadRequest, "FieldFormatInvalid", "'Age' must be an integer."},
		{"empty", apperr.New(apperr.EmptySubmission, "No answers provided."), http.StatusBadRequest, "EmptySubmission", "No answers provided."},
		{"unknown field", apperr.New(apperr.UnknownField, "Unknown field: x"), http.StatusNotFound, "UnknownField", "Unknown field: x"},
		{"not found", apperr.New(apperr.NotFound, "Form not found."), http.StatusNotFound, "NotFound", "Form not found."},
		{"not published", apperr.New(apperr.NotPublished, "Form is not published."), http.StatusConflict, "NotPublished", "Form is not published."},
		{"already assigned", apperr.New(apperr.AlreadyAssigned, "User is already assigned to this form."), http.StatusConflict, "AlreadyAssigned", "User is already assigned to this form."},
		{"retries", apperr.Wrap(apperr.AssignmentFailedAfterRetries, "please retry", errors.New("conflict")), http.StatusServiceUnavailable, "AssignmentFailedAfterRetries", "please retry"},
		{"persistence hidden", apperr.Wrap(apperr.Persistence, "failed to save", errors.New("disk on fire")), http.StatusInternalServerError, "Persistence", "Internal server error"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "Persistence", "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, httptest.NewRequest("POST", "/responses/7", nil), tc.err)

			testutil.AssertStatus(t, w, tc.wantStatus)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Code != tc.wantCode {
				t.Errorf("expected code %s, got %s", tc.wantCode, resp.Code)
			}
			if resp.Message != tc.wantMessage {
				t.Errorf("expected message %q, got %q", tc.wantMessage, resp.Message)
			}
			if resp.Error != http.StatusText(tc.wantStatus) {
				t.Errorf("expected error %q, got %q", http.StatusText(tc.wantStatus), resp.Error)
			}
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"answers":[{"fieldId":"age","answerValue":"25"}]}`, ""},
		{"invalid json", `{answers`, "invalid JSON"},
		{"file name too long", `{"answers":[{"fieldId":"cv","fileName":"` + strings.Repeat("a", 256) + `"}]}`, "answers[0].fileName must be at most 255 long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var parsed models.SubmitRequest
			err := DecodeAndValidate(httptest.NewRecorder(), req, &parsed)

			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if len(parsed.Answers) != 1 || parsed.Answers[0].Value != "25" {
					t.Errorf("unexpected parse result: %+v", parsed)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Errorf("expected %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDecodeAndValidate_LeavesEmptyAnswersToPipeline(t *testing.T) {
	for _, body := range []string{`{}`, `{"answers":[]}`, `{"answers":[{"answerValue":"x"}]}`} {
		var parsed models.SubmitRequest
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		if err := DecodeAndValidate(httptest.NewRecorder(), req, &parsed); err != nil {
			t.Errorf("%s: expected no boundary error, got %v", body, err)
		}
	}
}

func TestDecodeAndValidate_AssignRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"user_id":0}`))
	var parsed models.AssignRequest
	err := DecodeAndValidate(httptest.NewRecorder(), req, &parsed)
	if err == nil || err.Error() != "user_id is required" {
		t.Errorf("expected user_id is required, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	var got bool
	handler := RequireRole(testutil.TestJWTSecret, models.RoleAdmin)(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		got = ok && id.UserID == 1
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"garbage token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"learner", testutil.AuthHeader(t, 2, models.RoleLearner), http.StatusForbidden},
		{"admin", testutil.AuthHeader(t, 1, models.RoleAdmin), http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got = false
			w := httptest.NewRecorder()
			handler(w, testutil.MakeRequest("GET", "/forms/published", nil, tc.headers))
			testutil.AssertStatus(t, w, tc.want)
			if tc.want == http.StatusNoContent && !got {
				t.Error("expected identity in context")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})
	corsHandler := CORS(nextHandler)

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/responses/7", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "" {
			t.Errorf("expected empty 200 preflight, got %d %q", w.Code, w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
			t.Error("Expected Authorization in allowed headers")
		}
	})

	t.Run("request without origin defaults to wildcard", func(t *testing.T) {
		w := httptest.NewRecorder()
		corsHandler.ServeHTTP(w, httptest.NewRequest("GET", "/forms/published", nil))

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"X-Forwarded-For chain", map[string]string{"X-Forwarded-For": "192.168.1.100, 10.0.0.1"}, "127.0.0.1:12345", "192.168.1.100"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:12345", "203.0.113.50"},
		{"RemoteAddr with port", nil, "192.168.1.50:54321", "192.168.1.50"},
		{"RemoteAddr without port", nil, "192.168.1.50", "192.168.1.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if ip := GetClientIP(req); ip != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, ip)
			}
		})
	}
}

func TestErrorResponseShape(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Unauthorized" || resp["message"] != "Bearer token required" {
		t.Errorf("unexpected body %v", resp)
	}
	if _, ok := resp["code"]; ok {
		t.Error("code should be omitted when empty")
	}
}
