package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable applyEnvOverrides reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VITE_API_BASE_URL", "DATAHUNT_API_BASE_URL", "DATAHUNT_API_TIMEOUT",
		"DATAHUNT_EXPORT_DIR", "DATAHUNT_LOG_LEVEL", "DATAHUNT_DEBUG", "DATAHUNT_DARK_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8005", cfg.API.BaseURL)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "standard", cfg.Export.Mode)
	assert.Equal(t, 10, cfg.Upload.MaxSizeMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, time.Duration(0), cfg.GetAPITimeout(), "no deadline by default")
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://contacts.example.com/api"
	cfg.API.Timeout = "45s"
	cfg.Export.Format = "xlsx"
	cfg.Logging.Categories = map[string]bool{"ui": false}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 45*time.Second, loaded.GetAPITimeout())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://10.0.0.5:8005\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8005", cfg.API.BaseURL)
	assert.Equal(t, "standard", cfg.Export.Mode)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, "API.BaseURL is required"},
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }, "API.BaseURL must be a URL"},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }, "API.Timeout must be a duration"},
		{"bad format", func(c *Config) { c.Export.Format = "pdf" }, "Export.Format must be one of [csv xlsx]"},
		{"bad source", func(c *Config) { c.Upload.SourceType = "apollo" }, "Upload.SourceType must be one of"},
		{"bad parallel", func(c *Config) { c.Upload.Parallel = 0 }, "Upload.Parallel must be at least 1"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "UI.Theme must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Format: "json", Dir: "logs", Categories: map[string]bool{"api": false}}
	assert.False(t, lc.IsCategoryEnabled("search"), "disabled without debug mode")

	lc.DebugMode = true
	assert.True(t, lc.IsCategoryEnabled("search"))
	assert.False(t, lc.IsCategoryEnabled("api"))

	opts := lc.Options()
	assert.True(t, opts.JSONFormat)
	assert.Equal(t, "logs", opts.Dir)
}

func TestGetUploadDebounce(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.GetUploadDebounce())
	cfg.Upload.Debounce = "2s"
	assert.Equal(t, 2*time.Second, cfg.GetUploadDebounce())
	cfg.Upload.Debounce = "garbage"
	assert.Equal(t, 500*time.Millisecond, cfg.GetUploadDebounce())
}
