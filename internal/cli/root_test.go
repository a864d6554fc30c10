package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdDefinition(t *testing.T) {
	assert.Equal(t, "ralph", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmdSubcommands(t *testing.T) {
	want := []string{"init", "run", "resume", "loop", "status", "logs", "reset", "config", "task", "phases", "watch"}

	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing subcommand %q", name)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc1234", "2026-08-30")
	assert.Equal(t, "1.2.3 (abc1234, 2026-08-30)", rootCmd.Version)
}

func TestRootCmdDirFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, flag)
	assert.Equal(t, "C", flag.Shorthand)
	assert.Equal(t, ".", flag.DefValue)
}
