package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubLimiter struct {
	result LimitResult
	err    error
	keys   []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (LimitResult, error) {
	l.keys = append(l.keys, key)
	return l.result, l.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func serveWithLimiter(t *testing.T, limiter Limiter) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/receive", nil)
	rec := httptest.NewRecorder()
	RateLimit(limiter, testLogger())(next).ServeHTTP(rec, req)
	return rec, reached
}

func TestRateLimitAllows(t *testing.T) {
	limiter := &stubLimiter{result: LimitResult{Allowed: true, Limit: 5, Window: time.Minute}}

	rec, reached := serveWithLimiter(t, limiter)

	if !reached {
		t.Fatal("expected request to reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := &stubLimiter{result: LimitResult{Allowed: false, Limit: 5, Window: time.Minute, RetryAfter: 42 * time.Second}}

	rec, reached := serveWithLimiter(t, limiter)

	if reached {
		t.Fatal("rejected request must not reach the handler")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "42" {
		t.Errorf("expected Retry-After 42, got %q", got)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body["error"], "max 5 requests per 1m0s") {
		t.Errorf("expected payload to name the limit and window, got %q", body["error"])
	}
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}

	rec, reached := serveWithLimiter(t, limiter)

	if !reached {
		t.Fatal("expected fail-open when the limiter is unavailable")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitKeysByClientAddress(t *testing.T) {
	limiter := &stubLimiter{result: LimitResult{Allowed: true}}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	req := httptest.NewRequest(http.MethodPost, "/receive", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	RateLimit(limiter, testLogger())(next).ServeHTTP(httptest.NewRecorder(), req)

	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.9" {
		t.Fatalf("expected limiter keyed by client IP, got %v", limiter.keys)
	}
}
