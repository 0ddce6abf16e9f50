package chatwork

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_PostMessage(t *testing.T) {
	var gotPath, gotToken, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-ChatWorkToken")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotBody = r.PostFormValue("body")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("api-token", server.URL)
	if err := client.PostMessage(context.Background(), 42, "Checked in at 09:00."); err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}

	if gotPath != "/rooms/42/messages" {
		t.Errorf("path = %q, want /rooms/42/messages", gotPath)
	}
	if gotToken != "api-token" {
		t.Errorf("token header = %q, want api-token", gotToken)
	}
	if gotBody != "Checked in at 09:00." {
		t.Errorf("body = %q", gotBody)
	}
}

func TestClient_PostMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["invalid token"]}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("bad-token", server.URL)
	if err := client.PostMessage(context.Background(), 42, "hello"); err == nil {
		t.Error("PostMessage() should surface API errors")
	}
}
