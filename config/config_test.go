package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_URL", "JWT_EXPIRATION", "INVITE_EXPIRATION", "SERVER_PORT", "TIMEZONE", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 7*24*time.Hour, cfg.InviteExpiration)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NotNil(t, cfg.Location)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:ot.db")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ot.plant.local, http://localhost:5173 ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:ot.db", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, []string{"https://ot.plant.local", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"DATABASE_DRIVER": "mysql",
		"JWT_EXPIRATION":  "forever",
		"TIMEZONE":        "Mars/Olympus_Mons",
		"LOG_LEVEL":       "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
