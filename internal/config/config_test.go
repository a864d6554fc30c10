package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		"maxIterations": 5,
		"checks": [{"name": "lint", "command": "pnpm lint"}]
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxIterations)
	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, "lint", cfg.Checks[0].Name)
	assert.Equal(t, "pnpm lint", cfg.Checks[0].Command)
	assert.Equal(t, 0, cfg.Checks[0].TimeoutSeconds)

	// Optional fields default when omitted.
	assert.Equal(t, "TASK.md", cfg.TaskFile)
	assert.Equal(t, "PHASES.md", cfg.PhasesFile)
	assert.Equal(t, filepath.Join(".ralph", "state.json"), cfg.StateFile)
	assert.True(t, cfg.StopOnFailure)
}

func TestLoad_ExplicitFalseStopOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		"maxIterations": 3,
		"checks": [{"name": "test", "command": "go test ./..."}],
		"stopOnFailure": false,
		"stateFile": "var/ralph/state.json"
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.StopOnFailure)
	assert.Equal(t, "var/ralph/state.json", cfg.StateFile)
}

func TestLoad_UnknownFieldsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		"maxIterations": 2,
		"checks": [{"name": "lint", "command": "pnpm lint", "retries": 3}],
		"futureField": {"nested": true}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxIterations)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrMissing)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{not json`)

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "zero maxIterations",
			content: `{"maxIterations": 0, "checks": [{"name": "a", "command": "b"}]}`,
			wantMsg: "maxIterations",
		},
		{
			name:    "missing maxIterations",
			content: `{"checks": [{"name": "a", "command": "b"}]}`,
			wantMsg: "maxIterations",
		},
		{
			name:    "empty checks",
			content: `{"maxIterations": 5, "checks": []}`,
			wantMsg: "checks",
		},
		{
			name:    "check missing name",
			content: `{"maxIterations": 5, "checks": [{"command": "b"}]}`,
			wantMsg: "checks[0]",
		},
		{
			name:    "second check missing command",
			content: `{"maxIterations": 5, "checks": [{"name": "a", "command": "b"}, {"name": "c"}]}`,
			wantMsg: "checks[1]",
		},
		{
			name:    "negative timeout",
			content: `{"maxIterations": 5, "checks": [{"name": "a", "command": "b", "timeoutSeconds": -1}]}`,
			wantMsg: "timeoutSeconds",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.content)

			_, err := Load(dir)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestWriteDefault_CreatesFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := WriteDefault(dir)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MaxIterations)
	assert.Len(t, cfg.Checks, 4)
	assert.True(t, cfg.StopOnFailure)

	// The written file round-trips through the strict loader.
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteDefault_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"maxIterations": 7, "checks": [{"name": "only", "command": "true"}]}`)

	cfg, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxIterations)
	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, "only", cfg.Checks[0].Name)
}

func TestDefault_CheckOrder(t *testing.T) {
	cfg := Default()
	names := make([]string, 0, len(cfg.Checks))
	for _, c := range cfg.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"lint", "typecheck", "test", "smoke"}, names)
}
