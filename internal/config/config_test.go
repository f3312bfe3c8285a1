package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-hrms/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, config.StoreMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.DB.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local,http://b.local")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/v1", cfg.APIPrefix)
	assert.Equal(t, config.StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "db.internal", cfg.DB.Postgres().Host)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSAllowedOrigins)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.001)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.ErrorContains(t, err, "STORE_DRIVER")
}
