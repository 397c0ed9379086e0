package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ferry_booking/internal/platform/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("FERRY_BASE", "")
	t.Setenv("USE_MOCKS", "")
	t.Setenv("REDIS_HOST", "")

	cfg := config.FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.UseMocks)
	assert.Equal(t, 2, cfg.UpstreamRetries)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"BFT", "POT"}, cfg.AllowedSuppliers)
	assert.Equal(t, []string{"CAR", "HCR"}, cfg.AllowedMethods)
	assert.Equal(t, 20, cfg.RateLimitPerWindow)
	assert.Equal(t, 10*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, config.CatalogFixture, cfg.CatalogBackend)
	assert.False(t, cfg.CacheEnabled())
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_LiveMode(t *testing.T) {
	t.Setenv("FERRY_BASE", "https://exchange.example.com")
	t.Setenv("USE_MOCKS", "")

	cfg := config.FromEnv()
	assert.False(t, cfg.UseMocks)
	assert.NoError(t, cfg.Validate())

	t.Setenv("USE_MOCKS", "true")
	assert.True(t, config.FromEnv().UseMocks)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ALLOWED_SUPPLIERS", " BFT , , DFDS ")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("UPSTREAM_RETRIES", "not-a-number")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CATALOG_BACKEND", "Postgres")

	cfg := config.FromEnv()

	assert.Equal(t, []string{"BFT", "DFDS"}, cfg.AllowedSuppliers)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 2, cfg.UpstreamRetries)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, config.CatalogPostgres, cfg.CatalogBackend)
}

func TestValidate(t *testing.T) {
	cfg := config.FromEnv()

	cfg.UseMocks = false
	cfg.FerryBase = ""
	assert.Error(t, cfg.Validate())

	cfg.UseMocks = true
	cfg.CatalogBackend = "mysql"
	assert.Error(t, cfg.Validate())
}
