package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every configurable parameter of the server, sourced from
// environment variables (loaded from .env for local runs).
//
// When UpstreamURL is set the catalog and order endpoints proxy the
// external API; otherwise the embedded SQLite store serves both.
// RedisAddr is optional — without it the catalog is read from the
// source on every request.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`

	UpstreamURL string `envconfig:"UPSTREAM_API_URL"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	DBPath         string `envconfig:"DB_PATH" default:"./storefront.db"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/repository/migrations"`

	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"15m"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads .env when present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}
