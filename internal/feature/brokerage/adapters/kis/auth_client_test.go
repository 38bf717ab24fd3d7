package kis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAuthClient_Issue_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/oauth2/tokenP" {
			t.Errorf("expected /oauth2/tokenP, got %s", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["grant_type"] != "client_credentials" {
			t.Errorf("expected grant_type client_credentials, got %s", body["grant_type"])
		}
		if body["appkey"] != "test-key" {
			t.Errorf("expected appkey test-key, got %s", body["appkey"])
		}
		if body["appsecret"] != "test-secret" {
			t.Errorf("expected appsecret test-secret, got %s", body["appsecret"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "issued-token",
			"token_type": "Bearer",
			"expires_in": 86400
		}`))
	}))
	defer server.Close()

	cfg := Config{AppKey: "test-key", AppSecret: "test-secret", BaseURL: server.URL}
	client := NewAuthClient(cfg, server.Client())

	before := time.Now()
	tok, err := client.Issue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tok.Value != "issued-token" {
		t.Errorf("expected issued-token, got %q", tok.Value)
	}
	remaining := tok.ExpiresAt.Sub(before)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("expected roughly 24h lifetime, got %v", remaining)
	}
}

func TestAuthClient_Issue_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{
			"error_code": "EGW00102",
			"error_description": "invalid appkey"
		}`))
	}))
	defer server.Close()

	cfg := Config{AppKey: "bad-key", AppSecret: "bad-secret", BaseURL: server.URL}
	client := NewAuthClient(cfg, server.Client())

	_, err := client.Issue(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "EGW00102") {
		t.Errorf("expected upstream error code in message, got %v", err)
	}
}

func TestAuthClient_Issue_MissingToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type": "Bearer"}`))
	}))
	defer server.Close()

	client := NewAuthClient(Config{BaseURL: server.URL}, server.Client())

	_, err := client.Issue(context.Background())
	if err == nil {
		t.Fatal("expected error for empty access_token, got nil")
	}
}
