package dirs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir_ExplicitOverride(t *testing.T) {
	t.Setenv("RALPH_CONFIG_DIR", "/tmp/ralph-conf")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, "/tmp/ralph-conf", ConfigDir())
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("RALPH_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", "ralph"), ConfigDir())
}

func TestConfigDir_HomeFallback(t *testing.T) {
	t.Setenv("RALPH_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	assert.Equal(t, filepath.Join("/tmp/home", ".config", "ralph"), ConfigDir())
}
