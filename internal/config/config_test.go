package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.RateLimit.Limit != 5 {
		t.Errorf("expected default rate limit 5, got %d", cfg.RateLimit.Limit)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected default rate window 1m, got %v", cfg.RateLimit.Window)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("expected default store timeout 5s, got %v", cfg.Store.Timeout)
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.CORS.AllowedOrigins)
	}
	for i, origin := range want {
		if cfg.CORS.AllowedOrigins[i] != origin {
			t.Errorf("origin %d: expected %q, got %q", i, origin, cfg.CORS.AllowedOrigins[i])
		}
	}
}

func TestLoadRateLimitFloor(t *testing.T) {
	t.Setenv("RECEIVE_RATE_LIMIT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.RateLimit.Limit != 1 {
		t.Fatalf("expected rate limit to be clamped to 1, got %d", cfg.RateLimit.Limit)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid STORE_TIMEOUT")
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "msgs", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=msgs sslmode=disable"
	if got := p.DSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
