package config_test

import (
	"testing"
	"time"

	"github.com/iho/easybank/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.RateLimitRequestsPerWindow != 600 {
		t.Fatalf("expected default request limit 600, got %d", cfg.RateLimitRequestsPerWindow)
	}

	if cfg.RateLimitTransactionsPerWindow != 100 {
		t.Fatalf("expected default transaction limit 100, got %d", cfg.RateLimitTransactionsPerWindow)
	}

	if cfg.RateLimitWindow != time.Minute {
		t.Fatalf("expected default window 1m, got %s", cfg.RateLimitWindow)
	}

	if cfg.TransferMaxAttempts != 3 {
		t.Fatalf("expected default max attempts 3, got %d", cfg.TransferMaxAttempts)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RATE_LIMIT_RETRY_AFTER", "45s")
	t.Setenv("TRANSFER_BACKOFF_INITIAL", "250ms")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.RateLimitRetryAfter != 45*time.Second {
		t.Fatalf("expected retry-after override, got %s", cfg.RateLimitRetryAfter)
	}

	if cfg.TransferBackoffInitial != 250*time.Millisecond {
		t.Fatalf("expected backoff override, got %s", cfg.TransferBackoffInitial)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
