package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/auth"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "shiftlog-test",
		TTL:    time.Minute,
	})
	user := &domain.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice"}

	validToken, _, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var gotUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(tokens)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/orgs", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != user.ID {
				t.Errorf("user id = %s, want %s", gotUserID, user.ID)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("test-secret"),
		TTL:    -time.Minute,
	})
	expired, _, err := tokens.Issue(&domain.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/orgs", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
