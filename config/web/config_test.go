package config

import (
	"os"
	"testing"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "LOG_JSON", "JWT_SECRET",
	"FLUENCY_PORT", "FLUENCY_URL",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_RATE_LIMIT", "GEMINI_MAX_TOKENS",
	"DEBATE_REBUTTAL_QUESTIONS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 8080 || cfg.JWTSecret != "" || cfg.DebateRebuttals != 2 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if got := cfg.FluencyService.Address(); got != "localhost:50051" {
		t.Fatalf("unexpected fluency address %q", got)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" || cfg.Gemini.RateLimit != 30 || cfg.Gemini.MaxTokens != 500 {
		t.Fatalf("unexpected gemini defaults %+v", cfg.Gemini)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLUENCY_URL", "fluency")
	t.Setenv("FLUENCY_PORT", "6000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_RATE_LIMIT", "12.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.FluencyService.Address() != "fluency:6000" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.Gemini.APIKey != "key" || cfg.Gemini.RateLimit != 12.5 {
		t.Fatalf("unexpected gemini overrides %+v", cfg.Gemini)
	}
}

func TestLoadRejectsZeroRateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_RATE_LIMIT", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for a zero rate limit")
	}
}
