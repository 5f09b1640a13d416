package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("VITE_API_BASE_URL is honoured", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("VITE_API_BASE_URL", "http://vite:8005")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "http://vite:8005", cfg.API.BaseURL)
	})

	t.Run("DATAHUNT_API_BASE_URL wins over VITE_API_BASE_URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("VITE_API_BASE_URL", "http://vite:8005")
		t.Setenv("DATAHUNT_API_BASE_URL", "http://datahunt:9000")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "http://datahunt:9000", cfg.API.BaseURL)
	})

	t.Run("scalar overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATAHUNT_API_TIMEOUT", "15s")
		t.Setenv("DATAHUNT_EXPORT_DIR", "/tmp/exports")
		t.Setenv("DATAHUNT_LOG_LEVEL", "debug")
		t.Setenv("DATAHUNT_DEBUG", "true")
		t.Setenv("DATAHUNT_DARK_MODE", "1")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "15s", cfg.API.Timeout)
		assert.Equal(t, "/tmp/exports", cfg.Export.OutputDir)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "dark", cfg.UI.Theme)
	})

	t.Run("unparseable booleans are ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATAHUNT_DEBUG", "maybe")
		t.Setenv("DATAHUNT_DARK_MODE", "sometimes")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Logging.DebugMode)
		assert.Equal(t, "auto", cfg.UI.Theme)
	})

	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file:1\n"), 0644))
		t.Setenv("DATAHUNT_API_BASE_URL", "http://env:2")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://env:2", cfg.API.BaseURL)
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATAHUNT_EXPORT_DIR=/from/dotenv\n"), 0644))

	// godotenv.Load never overrides variables that are already set, and
	// t.Setenv("") counts as set, so unset it for this test.
	require.NoError(t, os.Unsetenv("DATAHUNT_EXPORT_DIR"))
	t.Cleanup(func() { os.Unsetenv("DATAHUNT_EXPORT_DIR") })

	LoadDotEnv(envFile, filepath.Join(dir, "missing.env"))
	assert.Equal(t, "/from/dotenv", os.Getenv("DATAHUNT_EXPORT_DIR"))
}
