package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_NoStateFile(t *testing.T) {
	dir := setupProject(t, `{
		"maxIterations": 2,
		"checks": [{"name": "pass", "command": "exit 0"}]
	}`)

	// status must work (and not create any state) before the first run
	assert.NoError(t, execute(t, "-C", dir, "status"))
}

func TestStatus_JSONFlag(t *testing.T) {
	dir := setupProject(t, `{
		"maxIterations": 2,
		"checks": [{"name": "pass", "command": "exit 0"}]
	}`)
	t.Cleanup(func() { statusJSON = false })

	require.NoError(t, execute(t, "-C", dir, "run"))
	assert.NoError(t, execute(t, "-C", dir, "status", "--json"))
}

func TestStatus_MissingConfigIsAnError(t *testing.T) {
	dir := setupProject(t, "")
	assert.Error(t, execute(t, "-C", dir, "status"))
}

func TestHelpers_ResolveRoot(t *testing.T) {
	prev := rootDir
	t.Cleanup(func() { rootDir = prev })

	rootDir = t.TempDir()
	root, err := resolveRoot()
	require.NoError(t, err)
	assert.Equal(t, rootDir, root)

	rootDir = "/definitely/not/a/real/path"
	_, err = resolveRoot()
	assert.Error(t, err)
}
