package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all datahunt configuration.
type Config struct {
	// API is the contacts backend.
	API APIConfig `yaml:"api"`

	// Export controls where and how exports are written.
	Export ExportConfig `yaml:"export"`

	// Upload controls file preflight and the drop folder.
	Upload UploadConfig `yaml:"upload"`

	// UI controls the interactive terminal app.
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	// BaseURL is the root of /leads, /leads/export and /upload.
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// Timeout is a Go duration. Empty means no client deadline.
	Timeout string `yaml:"timeout" validate:"omitempty,duration"`
}

// ExportConfig configures exports.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format" validate:"oneof=csv xlsx"`
	Mode      string `yaml:"mode" validate:"oneof=standard full"`
}

// UploadConfig configures uploads.
type UploadConfig struct {
	SourceType string `yaml:"source_type" validate:"omitempty,oneof=seamless skrapp"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=0"`
	WatchDir   string `yaml:"watch_dir"`
	// Debounce is how long a dropped file must stay unchanged before upload.
	Debounce string `yaml:"debounce" validate:"omitempty,duration"`
	// Parallel bounds concurrent uploads when several files are given.
	Parallel int `yaml:"parallel" validate:"min=1"`
}

// UIConfig configures the terminal app.
type UIConfig struct {
	// Theme is auto, light or dark.
	Theme string `yaml:"theme" validate:"oneof=auto light dark"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8005",
		},
		Export: ExportConfig{
			OutputDir: ".",
			Format:    "csv",
			Mode:      "standard",
		},
		Upload: UploadConfig{
			MaxSizeMB: 10,
			Debounce:  "500ms",
			Parallel:  2,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Dir:    filepath.Join(DirName, "logs"),
		},
	}
}

// Load loads configuration from a YAML file, then applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// The web client's variable is honoured so one .env serves both.
	if url := os.Getenv("VITE_API_BASE_URL"); url != "" {
		c.API.BaseURL = url
	}
	if url := os.Getenv("DATAHUNT_API_BASE_URL"); url != "" {
		c.API.BaseURL = url
	}
	if timeout := os.Getenv("DATAHUNT_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}
	if dir := os.Getenv("DATAHUNT_EXPORT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
	if level := os.Getenv("DATAHUNT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("DATAHUNT_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
		}
	}
	if v := os.Getenv("DATAHUNT_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			c.UI.Theme = "light"
			if dark {
				c.UI.Theme = "dark"
			}
		}
	}
}

// GetAPITimeout returns the API timeout, zero meaning none.
func (c *Config) GetAPITimeout() time.Duration {
	if c.API.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GetUploadDebounce returns the drop folder debounce.
func (c *Config) GetUploadDebounce() time.Duration {
	d, err := time.ParseDuration(c.Upload.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// MaxUploadBytes converts the configured megabyte limit. Zero disables it.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})
	return v
}()

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "duration":
		return fmt.Sprintf("%s must be a duration like 30s, got %q", field, fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
