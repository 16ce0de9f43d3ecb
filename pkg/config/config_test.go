package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.Store.FileName != "marketplace.json" {
		t.Fatalf("unexpected store file name: %q", cfg.Store.FileName)
	}

	if got := cfg.Session.TTL; got != 12*time.Hour {
		t.Fatalf("expected session ttl 12h, got %v", got)
	}

	if cfg.Publish.DefaultMaxProducts != 5 {
		t.Fatalf("unexpected default publish cap %d", cfg.Publish.DefaultMaxProducts)
	}

	if cfg.Analytics.MaxEvents != 5000 {
		t.Fatalf("unexpected analytics cap %d", cfg.Analytics.MaxEvents)
	}

	if cfg.Presence.TTL() != 90*time.Second {
		t.Fatalf("unexpected presence ttl %v", cfg.Presence.TTL())
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvJWTSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvJWTSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "emprendia")
	t.Setenv(EnvDataDir, t.TempDir())
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
