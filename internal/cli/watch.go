package cli

import (
	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the run state in a live terminal view",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		cfg, err := config.Load(root)
		if err != nil {
			return err
		}
		return tui.Run(root, cfg)
	},
}
