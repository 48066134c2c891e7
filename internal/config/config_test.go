package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Setenv("MIRRA_API_KEY", "")
	t.Setenv("MIRRA_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MIRRA_RATE_LIMIT_RPS", "")
	t.Setenv("MIRRA_RATE_LIMIT_BURST", "")
	t.Setenv("MIRRA_HTTP_TIMEOUT", "")

	if got := APIKey(); got != "" {
		t.Errorf("APIKey() = %q, want empty", got)
	}
	if got := BaseURL(); got != "" {
		t.Errorf("BaseURL() = %q, want empty", got)
	}
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q, want info", got)
	}
	if got := RateLimitRPS(); got != 0 {
		t.Errorf("RateLimitRPS() = %v, want 0", got)
	}
	if got := RateLimitBurst(); got != 1 {
		t.Errorf("RateLimitBurst() = %d, want 1", got)
	}
	if got := HTTPTimeout(); got != 30*time.Second {
		t.Errorf("HTTPTimeout() = %v, want 30s", got)
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv("MIRRA_API_KEY", "k123")
	t.Setenv("MIRRA_BASE_URL", "https://staging.example.com/api/sdk/v1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MIRRA_RATE_LIMIT_RPS", "5")
	t.Setenv("MIRRA_RATE_LIMIT_BURST", "10")
	t.Setenv("MIRRA_HTTP_TIMEOUT", "5s")

	if got := APIKey(); got != "k123" {
		t.Errorf("APIKey() = %q", got)
	}
	if got := BaseURL(); got != "https://staging.example.com/api/sdk/v1" {
		t.Errorf("BaseURL() = %q", got)
	}
	if got := LogLevel(); got != "debug" {
		t.Errorf("LogLevel() = %q", got)
	}
	if got := RateLimitRPS(); got != 5 {
		t.Errorf("RateLimitRPS() = %v", got)
	}
	if got := RateLimitBurst(); got != 10 {
		t.Errorf("RateLimitBurst() = %d", got)
	}
	if got := HTTPTimeout(); got != 5*time.Second {
		t.Errorf("HTTPTimeout() = %v", got)
	}
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("MIRRA_RATE_LIMIT_RPS", "-3")
	t.Setenv("MIRRA_RATE_LIMIT_BURST", "zero")
	t.Setenv("MIRRA_HTTP_TIMEOUT", "soon")

	if got := RateLimitRPS(); got != 0 {
		t.Errorf("RateLimitRPS() = %v, want 0", got)
	}
	if got := RateLimitBurst(); got != 1 {
		t.Errorf("RateLimitBurst() = %d, want 1", got)
	}
	if got := HTTPTimeout(); got != 30*time.Second {
		t.Errorf("HTTPTimeout() = %v, want 30s", got)
	}
}
