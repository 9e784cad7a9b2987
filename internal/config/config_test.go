package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "redis://cache:6379")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SURVEY_MIN_OPTIONS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Fatalf("expected redis:// prefix stripped, got %s", cfg.RedisAddr)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("expected TOKEN_TTL 2h, got %s", cfg.TokenTTL)
	}
	if cfg.MinOptions != 2 {
		t.Fatalf("expected MinOptions 2, got %d", cfg.MinOptions)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEBUG", "false")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadDebugFallsBackToDevSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret == "" {
		t.Fatal("expected a development secret in debug mode")
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "surveyhub.yaml")
	content := []byte("port: \"9090\"\nmongoDb: fromfile\ntokenTtl: 30m\njwtSecret: file-secret\ncors:\n  allowedOrigins: http://localhost:5173\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MONGO_DB", "fromenv")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected port from file, got %s", cfg.HTTPPort)
	}
	if cfg.MongoDatabase != "fromenv" {
		t.Fatalf("expected env to override file, got %s", cfg.MongoDatabase)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected tokenTtl 30m, got %s", cfg.TokenTTL)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("expected secret from file, got %q", cfg.JWTSecret)
	}
	if cfg.CORS.AllowedOrigins != "http://localhost:5173" {
		t.Fatalf("unexpected origins %q", cfg.CORS.AllowedOrigins)
	}
	if cfg.CORS.AllowedMethods == "" {
		t.Fatal("unset nested keys should keep defaults")
	}
}

func TestLoadRejectsBadMinOptions(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("SURVEY_MIN_OPTIONS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for SURVEY_MIN_OPTIONS=0")
	}
}
