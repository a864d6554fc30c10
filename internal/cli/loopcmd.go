package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/report"
	"github.com/campreserv/ralph/internal/state"
)

var loopUntilPass bool

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Run iterations until the loop completes or the budget runs out",
	Long: `Run iterations back-to-back, persisting state after each, until every
check passes, the iteration budget is exhausted, or (with --until-pass=false)
the first failed iteration.

Exits 0 if the loop completed, 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runLoop,
}

func init() {
	loopCmd.Flags().BoolVar(&loopUntilPass, "until-pass", true, "Keep iterating past failed iterations until the budget is exhausted")
}

func runLoop(cmd *cobra.Command, _ []string) error {
	root, cfg, st, err := loadProject()
	if err != nil {
		return err
	}

	runner := newRunner(root, cfg)
	res, err := runner.Run(cmd.Context(), st, loopUntilPass, func(s *state.State) error {
		_, saveErr := state.Save(root, cfg, s)
		return saveErr
	})
	if err != nil {
		return err
	}

	fmt.Print(report.Format(root, cfg, st))

	if res.Completed {
		fmt.Printf("Loop complete after %d iteration(s).\n", len(st.Iterations))
		return nil
	}
	fmt.Printf("Loop did not complete (%d/%d iterations used).\n", len(st.Iterations), cfg.MaxIterations)
	return ErrIterationFailed
}
