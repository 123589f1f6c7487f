package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int64(5), cfg.AuthRateLimit)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("STORAGE_TIMEOUT", "750ms")
	t.Setenv("JWT_EXPIRY_DURATION", "bogus")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT", "42")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.Equal(t, 750*time.Millisecond, cfg.StorageTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.RateLimit)
}

func TestLoadConfig_UnknownDriverFallsBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}
