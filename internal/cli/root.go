// Package cli implements the command-line interface for ralph.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/logging"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// ErrIterationFailed marks a cleanly-recorded failed iteration. It maps to
// exit code 1 without the "Ralph error:" prefix, which is reserved for
// real faults.
var ErrIterationFailed = errors.New("iteration failed")

var (
	rootDir  string
	settings config.Settings
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "ralph",
	Short: "Iteration-loop runner for verification checks",
	Long: `Ralph repeatedly runs an ordered list of shell verification checks
(lint, typecheck, test, smoke and the like) against a project, records every
iteration to a durable state file, and reports pass/fail/skip status until
the loop completes or the iteration budget runs out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		settings, err = config.LoadSettings()
		if err != nil {
			return err
		}
		logging.Init(logging.Config{
			Level:   settings.LogLevel,
			Format:  settings.LogFormat,
			NoColor: settings.NoColor,
		})
		return nil
	},
}

// Execute runs the root command. An unrecognized subcommand prints the
// help text before the error surfaces.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		_ = rootCmd.Help()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "C", ".", "Project root directory")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(phasesCmd)
	rootCmd.AddCommand(watchCmd)
}
