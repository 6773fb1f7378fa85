package config_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/bookstore/config"
)

const validSecret = "config-test-secret-at-least-32-chars!!"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "local" || cfg.Port != "8080" {
		t.Errorf("env/port = %q/%q, want local/8080", cfg.Env, cfg.Port)
	}
	if cfg.StoreDriver != config.StoreMongo {
		t.Errorf("store driver = %q, want mongo", cfg.StoreDriver)
	}
	if cfg.MongoDatabase != "bookstore" {
		t.Errorf("mongo database = %q, want bookstore", cfg.MongoDatabase)
	}
	if !cfg.RegisterAsAdmin {
		t.Error("REGISTER_AS_ADMIN default = false, want true")
	}
	if cfg.CatalogStatsCron != "@every 1m" {
		t.Errorf("catalog stats cron = %q", cfg.CatalogStatsCron)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("RESEND_API_KEY", "re_key")
	t.Setenv("RESEND_FROM", "books@example.com")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "SecretKey") {
		t.Fatalf("want SecretKey validation error, got %v", err)
	}
}

func TestLoad_ShortSecretRejected(t *testing.T) {
	t.Setenv("SECRET_KEY", "your-secret-key")

	if _, err := config.Load(); err == nil {
		t.Fatal("want error for a secret shorter than 32 chars")
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("RESEND_API_KEY", "re_key")
	t.Setenv("RESEND_FROM", "books@example.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SecretKey != validSecret {
		t.Errorf("secret = %q", cfg.SecretKey)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	if _, err := config.Load(); err == nil {
		t.Fatal("want error when DATABASE_URL is missing for postgres")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/bookstore")
	if _, err := config.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")

	if _, err := config.Load(); err == nil {
		t.Fatal("want error for unknown store driver")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		cfg := &config.Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
