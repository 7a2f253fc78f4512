package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BASELINE_DATABASE_URL", "postgres://localhost:5432/baseline_test")
	t.Setenv("BASELINE_AUTH_ACCESS_TOKEN_SECRET", "access-secret-that-is-long-enough!!")
	t.Setenv("BASELINE_AUTH_REFRESH_TOKEN_SECRET", "refresh-secret-that-is-long-enough!")
}

func TestLoad(t *testing.T) {
	t.Run("environment variables fill required fields", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/baseline_test", cfg.Database.URL)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
		assert.Equal(t, 15, cfg.Auth.TokenLifetimeMinutes)
		assert.False(t, cfg.Server.IsProduction())
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BASELINE_SERVER_PORT", "9090")
		t.Setenv("BASELINE_SERVER_ENVIRONMENT", EnvProduction)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.True(t, cfg.Server.IsProduction())
	})

	t.Run("missing secrets fail validation", func(t *testing.T) {
		t.Setenv("BASELINE_DATABASE_URL", "postgres://localhost:5432/baseline_test")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("short secret fails validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BASELINE_AUTH_ACCESS_TOKEN_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("identical secrets fail validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BASELINE_AUTH_REFRESH_TOKEN_SECRET", "access-secret-that-is-long-enough!!")

		_, err := Load()
		require.Error(t, err)
	})
}
