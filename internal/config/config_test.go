package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// The JWT secret is the only required setting, so every test that expects
// Load to succeed sets it first.

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOGADOPT_AUTH_JWTSECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:3000" {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, "0.0.0.0:3000")
	}
	if cfg.Database.Path != "data/adoption.db" {
		t.Errorf("Database.Path = %q, want default %q", cfg.Database.Path, "data/adoption.db")
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.RateLimit.Requests != 100 {
		t.Errorf("RateLimit.Requests = %d, want 100", cfg.RateLimit.Requests)
	}
	if cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("RateLimit.Window = %v, want 15m", cfg.RateLimit.Window)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DOGADOPT_AUTH_JWTSECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without a JWT secret")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOGADOPT_AUTH_JWTSECRET", "test-secret")
	t.Setenv("DOGADOPT_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("DOGADOPT_RATELIMIT_REQUESTS", "5")
	t.Setenv("DOGADOPT_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q, want override", cfg.Server.Addr)
	}
	if cfg.RateLimit.Requests != 5 {
		t.Errorf("RateLimit.Requests = %d, want 5", cfg.RateLimit.Requests)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# comment line\n" +
		"DOGADOPT_AUTH_JWTSECRET=\"from-dotenv\"\n" +
		"DOGADOPT_FROM_FILE=file-value\n" +
		"not-a-pair\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Chdir(dir)

	// A real env var must win over the .env file.
	t.Setenv("DOGADOPT_AUTH_JWTSECRET", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, real env should beat .env", cfg.Auth.JWTSecret)
	}
	if got := os.Getenv("DOGADOPT_FROM_FILE"); got != "file-value" {
		t.Errorf("DOGADOPT_FROM_FILE = %q, want value from .env", got)
	}
}
