package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/craftline/shopfront/internal/application/session"
	"github.com/craftline/shopfront/internal/infrastructure/redis"
	"github.com/craftline/shopfront/internal/transport/http/response"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

type fakeLimiter struct {
	decision redis.Decision
	err      error

	keys []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return redis.Decision{}, f.err
	}
	return f.decision, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitFixedWindow_Allowed_PassesThrough(t *testing.T) {
	t.Parallel()

	limiter := &fakeLimiter{decision: redis.Decision{Allowed: true, Limit: 3, Remaining: 2}}
	mw := RateLimitFixedWindow(limiter, FixedWindowConfig{RouteKey: "auth.login", Limit: 3, Window: time.Minute}, response.WriteError)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(limiter.keys) != 1 || !contains(limiter.keys[0], "rl:auth.login:ip:") {
		t.Fatalf("unexpected limiter keys: %v", limiter.keys)
	}
}

func TestRateLimitFixedWindow_Denied_429WithRetryAfter(t *testing.T) {
	t.Parallel()

	limiter := &fakeLimiter{decision: redis.Decision{Allowed: false, Limit: 3, RetryAfter: 30 * time.Second}}
	mw := RateLimitFixedWindow(limiter, FixedWindowConfig{RouteKey: "auth.login", Limit: 3, Window: time.Minute}, response.WriteError)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}
	if body := rec.Body.String(); !contains(body, "rate_limited") || !contains(body, "auth.login") {
		t.Fatalf("unexpected body: %s", body)
	}
}

// Limiter failures fail open: losing Redis must not lock users out.
func TestRateLimitFixedWindow_LimiterError_FailsOpen(t *testing.T) {
	t.Parallel()

	limiter := &fakeLimiter{err: errors.New("redis down")}
	mw := RateLimitFixedWindow(limiter, FixedWindowConfig{RouteKey: "auth.login", Limit: 3, Window: time.Minute}, response.WriteError)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitFixedWindow_NilLimiter_PassesThrough(t *testing.T) {
	t.Parallel()

	mw := RateLimitFixedWindow(nil, FixedWindowConfig{RouteKey: "auth.login", Limit: 3, Window: time.Minute}, response.WriteError)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitFixedWindow_PrefersSessionUserOverIP(t *testing.T) {
	t.Parallel()

	limiter := &fakeLimiter{decision: redis.Decision{Allowed: true}}
	mw := RateLimitFixedWindow(limiter, FixedWindowConfig{RouteKey: "auth.login", Limit: 3, Window: time.Minute}, response.WriteError)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req = req.WithContext(WithClaims(req.Context(), session.Claims{UserID: "u1"}))
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if len(limiter.keys) != 1 || !contains(limiter.keys[0], ":u:u1:") {
		t.Fatalf("expected user identity in key, got %v", limiter.keys)
	}
}

func TestClientIP_XForwardedForFirstHop(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.RemoteAddr = "10.0.0.2:4321"

	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", ip)
	}

	req.Header.Del("X-Forwarded-For")
	if ip := clientIP(req); ip != "10.0.0.2" {
		t.Fatalf("expected remote addr host, got %q", ip)
	}
}
