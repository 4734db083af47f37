package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SESSION_CLEANUP", "")
	t.Setenv("CORS_ORIGIN", "")

	cfg := FromEnv()
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "dev-secret", cfg.SessionSecret)
	assert.True(t, cfg.SessionCleanup)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_CLEANUP", "false")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/perapera")

	cfg := FromEnv()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.False(t, cfg.SessionCleanup)
	assert.Equal(t, "postgres://u:p@db/perapera", cfg.DatabaseURL)

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
