package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func tokenServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`)); err != nil {
			t.Errorf("write token: %v", err)
		}
	}))
}

func TestGetTokenCachesUntilExpiry(t *testing.T) {
	var hits atomic.Int64
	server := tokenServer(t, &hits)
	defer server.Close()

	cred := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})
	ctx := context.Background()

	token, err := cred.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken returned error: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token %s", token)
	}
	if _, err := cred.GetToken(ctx); err != nil {
		t.Fatalf("second GetToken returned error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single token request, got %d", got)
	}
}

func TestForceRefreshBypassesCache(t *testing.T) {
	var hits atomic.Int64
	server := tokenServer(t, &hits)
	defer server.Close()

	cred := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})
	ctx := context.Background()

	if _, err := cred.GetToken(ctx); err != nil {
		t.Fatalf("GetToken returned error: %v", err)
	}
	if _, err := cred.ForceRefresh(ctx); err != nil {
		t.Fatalf("ForceRefresh returned error: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected two token requests, got %d", got)
	}
}

func TestSetAuthHeader(t *testing.T) {
	var hits atomic.Int64
	server := tokenServer(t, &hits)
	defer server.Close()

	cred := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err := cred.SetAuthHeader(req); err != nil {
		t.Fatalf("SetAuthHeader returned error: %v", err)
	}
	if auth := req.Header.Get("Authorization"); auth != "Bearer token123" {
		t.Fatalf("unexpected Authorization header %q", auth)
	}
}

func TestGetTokenError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	cred := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})
	if _, err := cred.GetToken(context.Background()); err == nil {
		t.Fatal("expected error from rejected token request")
	}
}
