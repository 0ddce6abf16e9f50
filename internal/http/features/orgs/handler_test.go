package orgs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftlog/shiftlog/internal/http/middleware"
)

func testHandler() *Handler {
	return &Handler{
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

// authenticated builds a request carrying an authenticated user, as the auth
// middleware would.
func authenticated(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return response["error"]
}

func TestCreate_RequiresAuthentication(t *testing.T) {
	handler := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/orgs", bytes.NewBufferString(`{"name":"Acme","slug":"acme"}`))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "empty body",
			body:          `{}`,
			expectedError: "name and slug are required",
		},
		{
			name:          "missing slug",
			body:          `{"name": "Acme"}`,
			expectedError: "name and slug are required",
		},
		{
			name:          "invalid json",
			body:          `{invalid}`,
			expectedError: "invalid request body",
		},
	}

	handler := testHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/orgs", bytes.NewBufferString(tt.body))
			req = authenticated(req, uuid.New())
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status code = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := decodeError(t, rec); got != tt.expectedError {
				t.Errorf("Error = %q, want %q", got, tt.expectedError)
			}
		})
	}
}

func TestStatus_InvalidOrganizationID(t *testing.T) {
	handler := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/orgs/not-a-uuid/status", nil)
	req = authenticated(req, uuid.New())
	req = withURLParam(req, "orgID", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.Status(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := decodeError(t, rec); got != "invalid organization id" {
		t.Errorf("Error = %q", got)
	}
}

func TestLinkIdentity_Validation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "unknown platform",
			body:          `{"platform": "discord", "platform_user_id": "123"}`,
			expectedError: "invalid platform",
		},
		{
			name:          "missing platform user id",
			body:          `{"platform": "slack"}`,
			expectedError: "platform_user_id is required",
		},
		{
			name:          "invalid json",
			body:          `{invalid}`,
			expectedError: "invalid request body",
		},
	}

	handler := testHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/identities", bytes.NewBufferString(tt.body))
			req = authenticated(req, uuid.New())
			rec := httptest.NewRecorder()

			handler.LinkIdentity(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status code = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := decodeError(t, rec); got != tt.expectedError {
				t.Errorf("Error = %q, want %q", got, tt.expectedError)
			}
		})
	}
}
