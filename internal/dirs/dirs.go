// Package dirs provides XDG Base Directory Specification compliant paths
// for ralph's global directories.
package dirs

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the global ralph configuration directory.
// Resolution order: RALPH_CONFIG_DIR > XDG_CONFIG_HOME/ralph > ~/.config/ralph.
func ConfigDir() string {
	if dir := os.Getenv("RALPH_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ralph")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "ralph")
	}
	return filepath.Join(home, ".config", "ralph")
}
