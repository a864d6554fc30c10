// Package config provides configuration management for ralph.
// The project config (ralph.config.json) is a strict, hand-authored
// contract: it fails loudly on any schema violation. Operator preferences
// live in a separate global settings file (see settings.go).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the project configuration file, one per project root.
const FileName = "ralph.config.json"

// ErrMissing indicates the config file does not exist at the expected path.
var ErrMissing = errors.New("config file not found")

// ErrInvalid indicates the config file exists but fails validation.
var ErrInvalid = errors.New("invalid config")

// Check defines a single named verification command.
type Check struct {
	Name    string `json:"name"`
	Command string `json:"command"`

	// TimeoutSeconds bounds the check's execution time. 0 means unbounded.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// Config holds the project configuration for the iteration loop.
type Config struct {
	MaxIterations int     `json:"maxIterations"`
	Checks        []Check `json:"checks"`
	TaskFile      string  `json:"taskFile"`
	PhasesFile    string  `json:"phasesFile"`
	StateFile     string  `json:"stateFile"`
	StopOnFailure bool    `json:"stopOnFailure"`
}

// rawConfig mirrors Config with pointer fields so that omitted optional
// fields can be distinguished from explicit zero values.
type rawConfig struct {
	MaxIterations *int       `json:"maxIterations"`
	Checks        []rawCheck `json:"checks"`
	TaskFile      *string    `json:"taskFile"`
	PhasesFile    *string    `json:"phasesFile"`
	StateFile     *string    `json:"stateFile"`
	StopOnFailure *bool      `json:"stopOnFailure"`
}

type rawCheck struct {
	Name           *string `json:"name"`
	Command        *string `json:"command"`
	TimeoutSeconds *int    `json:"timeoutSeconds"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		MaxIterations: 10,
		Checks: []Check{
			{Name: "lint", Command: "pnpm lint"},
			{Name: "typecheck", Command: "pnpm typecheck"},
			{Name: "test", Command: "pnpm test"},
			{Name: "smoke", Command: "pnpm smoke"},
		},
		TaskFile:      "TASK.md",
		PhasesFile:    "PHASES.md",
		StateFile:     filepath.Join(".ralph", "state.json"),
		StopOnFailure: true,
	}
}

// Path returns the config file path for a project root.
func Path(rootDir string) string {
	return filepath.Join(rootDir, FileName)
}

// Load reads and validates <rootDir>/ralph.config.json.
// It fails with ErrMissing if the file is absent and ErrInvalid if the
// file is unparsable or violates the schema.
func Load(rootDir string) (*Config, error) {
	return LoadPath(Path(rootDir))
}

// LoadPath reads and validates the config file at an explicit path.
func LoadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, path)
	}
	return cfg, nil
}

// Parse validates and normalizes raw config JSON.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrInvalid, err)
	}
	return normalize(&raw)
}

// WriteDefault writes the built-in default config to rootDir if no config
// file exists there, and returns it. If one already exists it is loaded
// instead — an existing file is never overwritten.
func WriteDefault(rootDir string) (*Config, error) {
	path := Path(rootDir)
	if _, err := os.Stat(path); err == nil {
		return LoadPath(path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	cfg := Default()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}
	return cfg, nil
}

// normalize validates the raw config and fills in defaults for the
// optional fields. maxIterations and checks are hard requirements.
func normalize(raw *rawConfig) (*Config, error) {
	if raw.MaxIterations == nil || *raw.MaxIterations <= 0 {
		return nil, fmt.Errorf("%w: maxIterations must be a positive integer", ErrInvalid)
	}
	if len(raw.Checks) == 0 {
		return nil, fmt.Errorf("%w: checks must be a non-empty array", ErrInvalid)
	}

	cfg := Default()
	cfg.MaxIterations = *raw.MaxIterations
	cfg.Checks = make([]Check, 0, len(raw.Checks))

	for i, rc := range raw.Checks {
		if rc.Name == nil || *rc.Name == "" {
			return nil, fmt.Errorf("%w: checks[%d] is missing a name", ErrInvalid, i)
		}
		if rc.Command == nil || *rc.Command == "" {
			return nil, fmt.Errorf("%w: checks[%d] (%s) is missing a command", ErrInvalid, i, *rc.Name)
		}
		check := Check{Name: *rc.Name, Command: *rc.Command}
		if rc.TimeoutSeconds != nil {
			if *rc.TimeoutSeconds < 0 {
				return nil, fmt.Errorf("%w: checks[%d] (%s) has a negative timeoutSeconds", ErrInvalid, i, *rc.Name)
			}
			check.TimeoutSeconds = *rc.TimeoutSeconds
		}
		cfg.Checks = append(cfg.Checks, check)
	}

	if raw.TaskFile != nil {
		cfg.TaskFile = *raw.TaskFile
	}
	if raw.PhasesFile != nil {
		cfg.PhasesFile = *raw.PhasesFile
	}
	if raw.StateFile != nil {
		cfg.StateFile = *raw.StateFile
	}
	if raw.StopOnFailure != nil {
		cfg.StopOnFailure = *raw.StopOnFailure
	}

	return cfg, nil
}
