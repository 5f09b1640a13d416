package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DirName is the per-project configuration directory.
const DirName = ".datahunt"

// DefaultPath prefers a project-local .datahunt/config.yaml and otherwise
// falls back to the one in the home directory.
func DefaultPath() string {
	local := filepath.Join(DirName, "config.yaml")
	if _, err := os.Stat(DirName); err == nil {
		return local
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, DirName, "config.yaml")
	}
	return local
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none)
// into the environment without overriding variables already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
