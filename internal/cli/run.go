package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/report"
	"github.com/campreserv/ralph/internal/state"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one iteration of the check loop",
	Long: `Run exactly one iteration: execute every configured check in order,
record the results, and persist the updated run state.

Exits 0 if the iteration passed, 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOneIteration(cmd, false)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Run one iteration unless the loop is already complete",
	Long: `Same as run, except a loop that already finished successfully is not
an error: resume prints a message and exits 0 without running anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOneIteration(cmd, true)
	},
}

func runOneIteration(cmd *cobra.Command, resume bool) error {
	root, cfg, st, err := loadProject()
	if err != nil {
		return err
	}

	if resume && st.Status == state.StatusComplete {
		fmt.Println("Loop is already complete. Nothing to do.")
		return nil
	}

	runner := newRunner(root, cfg)
	it, err := runner.RunIteration(cmd.Context(), st)
	if err != nil {
		return err
	}

	if st, err = state.Save(root, cfg, st); err != nil {
		return err
	}

	fmt.Print(report.Format(root, cfg, st))

	if it.Status == state.IterationFailed {
		return ErrIterationFailed
	}
	return nil
}
