package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENV", "DEBUG", "DATABASE_URL", "REDIS_URL", "NATS_URL",
		"ANNOUNCE_TTL", "ANNOUNCE_CACHE_SIZE", "SNAPSHOT_INTERVAL"} {
		t.Setenv(k, "")
	}
	// viper treats empty variables as unset, so the defaults apply.

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10*time.Second, cfg.AnnounceTTL)
	assert.Equal(t, 4096, cfg.AnnounceCacheSize)
	assert.Equal(t, time.Minute, cfg.SnapshotInterval)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DEBUG", "true")
	t.Setenv("DATABASE_URL", "postgres://golf@localhost/golf")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("ANNOUNCE_TTL", "30s")
	t.Setenv("ANNOUNCE_CACHE_SIZE", "100")
	t.Setenv("SNAPSHOT_INTERVAL", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "postgres://golf@localhost/golf", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, 30*time.Second, cfg.AnnounceTTL)
	assert.Equal(t, 100, cfg.AnnounceCacheSize)
	assert.Zero(t, cfg.SnapshotInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad ttl", key: "ANNOUNCE_TTL", val: "ten seconds"},
		{name: "zero ttl", key: "ANNOUNCE_TTL", val: "0s"},
		{name: "bad interval", key: "SNAPSHOT_INTERVAL", val: "hourly"},
		{name: "negative interval", key: "SNAPSHOT_INTERVAL", val: "-1m"},
		{name: "zero cache", key: "ANNOUNCE_CACHE_SIZE", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "8080")
			t.Setenv("ANNOUNCE_TTL", "10s")
			t.Setenv("ANNOUNCE_CACHE_SIZE", "4096")
			t.Setenv("SNAPSHOT_INTERVAL", "1m")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
