// Package config loads runtime settings from a .env file and environment variables.
// Environment variables always win over .env values, so the same binary runs locally and
// in production without code changes.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port  string // TCP port the HTTP server listens on
	Env   string // "development", "staging" or "production"
	Debug bool   // Debug-level logging

	// DatabaseURL is a PostgreSQL connection string. Empty runs the server on the
	// in-memory repository, which loses everything on restart.
	DatabaseURL string

	// RedisURL enables the shared announcement dedupe store when set.
	RedisURL string
	// NATSURL enables relaying live updates between server instances when set.
	NATSURL string

	AnnounceTTL       time.Duration // A notable event is announced once per window
	AnnounceCacheSize int           // Bound on the in-memory dedupe cache

	// SnapshotInterval is how often team totals are persisted. Zero disables the job.
	SnapshotInterval time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	v := newViper()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DEBUG", false)
	v.SetDefault("ANNOUNCE_TTL", "10s")
	v.SetDefault("ANNOUNCE_CACHE_SIZE", 4096)
	v.SetDefault("SNAPSHOT_INTERVAL", "1m")

	cfg := &Config{
		Port:              v.GetString("PORT"),
		Env:               v.GetString("ENV"),
		Debug:             v.GetBool("DEBUG"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisURL:          v.GetString("REDIS_URL"),
		NATSURL:           v.GetString("NATS_URL"),
		AnnounceCacheSize: v.GetInt("ANNOUNCE_CACHE_SIZE"),
	}

	var err error
	if cfg.AnnounceTTL, err = duration(v, "ANNOUNCE_TTL"); err != nil {
		return nil, err
	}
	if cfg.SnapshotInterval, err = duration(v, "SNAPSHOT_INTERVAL"); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("config: PORT must not be empty"))
	}
	if c.AnnounceTTL <= 0 {
		errs = append(errs, errors.New("config: ANNOUNCE_TTL must be positive"))
	}
	if c.AnnounceCacheSize <= 0 {
		errs = append(errs, errors.New("config: ANNOUNCE_CACHE_SIZE must be positive"))
	}
	if c.SnapshotInterval < 0 {
		errs = append(errs, errors.New("config: SNAPSHOT_INTERVAL must not be negative"))
	}
	return errors.Join(errs...)
}

// duration parses key strictly; viper's own conversion turns typos into zero.
func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func newViper() *viper.Viper {
	// Missing .env is fine: production sets real environment variables.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return v
}
