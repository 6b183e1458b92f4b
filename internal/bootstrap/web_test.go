package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewWebServer_GateRunsBeforeProxy(t *testing.T) {
	cfg := testConfig()
	cfg.FrontendOrigin = "http://127.0.0.1:1" // never reached for gated paths

	srv, err := newWebServer(cfg)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	// An anonymous request to a protected page bounces at the gate without
	// ever touching the upstream.
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestNewWebServer_BadOrigin_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.FrontendOrigin = "http://bad host"

	if _, err := newWebServer(cfg); err == nil {
		t.Fatalf("expected error for malformed origin")
	}
}
