package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	appctx "github.com/craftline/shopfront/internal/pkg/context"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	var inCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inCtx, _ = appctx.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	echoed := rec.Header().Get(HeaderXRequestID)
	if echoed == "" {
		t.Fatalf("expected generated request id in response header")
	}
	if inCtx != echoed {
		t.Fatalf("expected context id %q to match header %q", inCtx, echoed)
	}
}

func TestRequestID_PassesThroughCallerID(t *testing.T) {
	t.Parallel()

	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "req-abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderXRequestID); got != "req-abc" {
		t.Fatalf("expected caller id echoed, got %q", got)
	}
}
