package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/loop"
	"github.com/campreserv/ralph/internal/state"
)

// resolveRoot turns the --dir flag into an absolute, existing directory.
func resolveRoot() (string, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("resolve project root %q: %w", rootDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", abs)
	}
	return abs, nil
}

// loadProject resolves the root and loads config plus state for it.
func loadProject() (string, *config.Config, *state.State, error) {
	root, err := resolveRoot()
	if err != nil {
		return "", nil, nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, nil, err
	}
	st, err := state.Load(root, cfg)
	if err != nil {
		return "", nil, nil, err
	}
	return root, cfg, st, nil
}

// newRunner builds the iteration runner with settings applied.
func newRunner(root string, cfg *config.Config) *loop.Runner {
	r := loop.NewRunner(root, cfg)
	r.DefaultTimeout = time.Duration(settings.CheckTimeoutSeconds) * time.Second
	return r
}
