package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the run state (the config file is untouched)",
	Long: `Delete the state file so the next run starts a fresh loop. If the
config itself is missing or invalid, the default config's state path is
used so a broken project can still be reset.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(_ *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		cfg = config.Default()
	}

	if err := state.Remove(root, cfg); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", state.FilePath(root, cfg))
	return nil
}
