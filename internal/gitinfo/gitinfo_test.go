package gitinfo

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# Test\n"), 0o644))

	for _, args := range [][]string{
		{"add", "README.md"},
		{"commit", "-m", "Initial commit"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}

	return dir
}

func TestCapture(t *testing.T) {
	dir := setupTestRepo(t)

	snap, err := Capture(dir)
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Branch)
	assert.Len(t, snap.Commit, 7)
	assert.False(t, snap.Dirty)
}

func TestCapture_Dirty(t *testing.T) {
	dir := setupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x\n"), 0o644))

	snap, err := Capture(dir)
	require.NoError(t, err)
	assert.True(t, snap.Dirty)
}

func TestCapture_NotARepo(t *testing.T) {
	_, err := Capture(t.TempDir())
	assert.Error(t, err)
}
