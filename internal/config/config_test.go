package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "SERVER_PORT", "DB_DRIVER", "JWT_SECRET", "TOKEN_TTL_HOURS", "RESET_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "dev-secret-key", cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.ResetDB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("RESET_DB", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "soon")
	t.Setenv("RESET_DB", "maybe")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.ResetDB)
}
