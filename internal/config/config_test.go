package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATASET_SOURCE", "DATASET_PATH", "DEFAULT_MIN_CONNECTION", "MAX_EXPANSIONS", "CACHE_SIZE", "CACHE_TTL", "REDIS_URL", "CACHE_BACKEND", "ROUTES_RPS", "ROUTES_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceFile, cfg.DatasetSource)
	assert.Equal(t, 60, cfg.DefaultMinConnection)
	assert.Equal(t, 10000, cfg.MaxExpansions)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Zero(t, cfg.RoutesPerSecond)
	assert.Equal(t, 10, cfg.RoutesBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATASET_SOURCE", "SQLite")
	t.Setenv("DEFAULT_MIN_CONNECTION", "45")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SourceSQLite, cfg.DatasetSource)
	assert.Equal(t, 45, cfg.DefaultMinConnection)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_EXPANSIONS", "lots")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_EXPANSIONS")

	t.Setenv("MAX_EXPANSIONS", "")
	t.Setenv("DATASET_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("DATASET_SOURCE", "ftp")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadCacheBackend(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)

	t.Setenv("REDIS_URL", "")
	t.Setenv("CACHE_BACKEND", "redis")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("CACHE_BACKEND", "sql")
	_, err = Load()
	require.Error(t, err, "sql cache needs a database source")

	t.Setenv("DATASET_SOURCE", "sqlite")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, CacheSQL, cfg.CacheBackend)

	t.Setenv("CACHE_BACKEND", "disk")
	_, err = Load()
	require.Error(t, err)
}

func TestGetFloat(t *testing.T) {
	t.Setenv("ROUTES_RPS", "2.5")
	v, err := GetFloat("ROUTES_RPS", 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-9)

	t.Setenv("ROUTES_RPS", "fast")
	_, err = GetFloat("ROUTES_RPS", 0)
	require.Error(t, err)
}
