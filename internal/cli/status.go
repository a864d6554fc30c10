package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/report"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current config and run state",
	Long: `Print a summary of the project's loop state: task/phases file
presence, iteration count against the budget, loop status, and the most
recent iteration's per-check results. Never mutates anything.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print raw config and state as JSON")
}

func runStatus(_ *cobra.Command, _ []string) error {
	root, cfg, st, err := loadProject()
	if err != nil {
		return err
	}

	if statusJSON {
		data, err := report.JSON(cfg, st)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	fmt.Print(report.Format(root, cfg, st))
	return nil
}
