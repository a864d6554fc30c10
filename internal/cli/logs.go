package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/report"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the full iteration history",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, _, st, err := loadProject()
		if err != nil {
			return err
		}
		fmt.Print(report.FormatHistory(st))
		return nil
	},
}
