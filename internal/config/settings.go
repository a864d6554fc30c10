package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/campreserv/ralph/internal/dirs"
)

// Settings holds global operator preferences, loaded from
// <config dir>/settings.yaml with env var overrides on top. These never
// affect loop semantics — only logging and the default check timeout.
type Settings struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	NoColor   bool   `yaml:"no_color"`

	// CheckTimeoutSeconds applies to checks that have no explicit
	// timeoutSeconds in the project config. 0 means unbounded.
	CheckTimeoutSeconds int `yaml:"check_timeout_seconds"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// LoadSettings loads global settings from the default config directory.
func LoadSettings() (Settings, error) {
	return LoadSettingsFromDir(dirs.ConfigDir())
}

// LoadSettingsFromDir loads settings.yaml from an explicit directory.
// A missing file yields the defaults; a malformed one is an error.
// Env vars (RALPH_LOG_LEVEL, RALPH_LOG_FORMAT, RALPH_NO_COLOR,
// RALPH_CHECK_TIMEOUT_SECONDS) override file values.
func LoadSettingsFromDir(dir string) (Settings, error) {
	s := DefaultSettings()

	path := filepath.Join(dir, "settings.yaml")
	data, err := os.ReadFile(path) //nolint:gosec // user's settings file
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}

	s.applyEnv()
	return s, nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv("RALPH_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("RALPH_LOG_FORMAT"); v != "" {
		s.LogFormat = v
	}
	if v := os.Getenv("RALPH_NO_COLOR"); v != "" {
		s.NoColor = v == "true" || v == "1"
	}
	if v := os.Getenv("RALPH_CHECK_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			s.CheckTimeoutSeconds = n
		}
	}
}
