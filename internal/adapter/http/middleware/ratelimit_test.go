package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/easybank/internal/domain"
)

type limiterFunc func(ctx context.Context, key string, limit int, window time.Duration) error

func (f limiterFunc) Check(ctx context.Context, key string, limit int, window time.Duration) error {
	return f(ctx, key, limit, window)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllows(t *testing.T) {
	var gotKey string
	limiter := limiterFunc(func(ctx context.Context, key string, limit int, window time.Duration) error {
		gotKey = key
		return nil
	})

	m := NewRateLimitMiddleware(limiter, 600, time.Minute)
	h := m.Limit("/accounts/{number}")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ACC-0a1b2c3d", nil)
	req.RemoteAddr = "10.0.0.7:54321"
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotKey != "10.0.0.7:/accounts/{number}" {
		t.Fatalf("unexpected limiter key %q", gotKey)
	}
}

func TestRateLimitRejects(t *testing.T) {
	limiter := limiterFunc(func(ctx context.Context, key string, limit int, window time.Duration) error {
		return &domain.RateLimitError{RetryAfter: 30 * time.Second}
	})

	m := NewRateLimitMiddleware(limiter, 600, time.Minute)
	h := m.Limit("/accounts")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("429 body is not valid JSON: %v", err)
	}
	if body.Error != "rate limit exceeded" {
		t.Fatalf("unexpected error body %q", body.Error)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded IP, got %q", got)
	}
}

func TestClientIPStripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:54321"

	if got := clientIP(req); got != "10.0.0.7" {
		t.Fatalf("expected bare IP, got %q", got)
	}
}
