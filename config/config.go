package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	StoreDriver   string `env:"STORE_DRIVER"     envDefault:"mongo"                      validate:"required,oneof=mongo postgres memory"`
	MongoURI      string `env:"MONGODB_URI"      envDefault:"mongodb://localhost:27017/" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"bookstore"                  validate:"required_if=StoreDriver mongo"`
	DatabaseURL   string `env:"DATABASE_URL"                                             validate:"required_if=StoreDriver postgres"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// SecretKey signs bearer tokens. Outside local it must be set; locally an
	// empty value makes the server generate a random per-process key.
	SecretKey       string `env:"SECRET_KEY"        validate:"required_unless=Env local,omitempty,min=32"`
	RegisterAsAdmin bool   `env:"REGISTER_AS_ADMIN" envDefault:"true"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_with=ResendAPIKey"`

	CatalogStatsCron string `env:"CATALOG_STATS_CRON" envDefault:"@every 1m" validate:"required"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
