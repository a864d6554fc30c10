package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/state"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default config and an empty state file",
	Long: `Write ralph.config.json with the built-in defaults if it does not
exist, and create the initial (idle, empty) state file if absent. Existing
files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	existed := fileExists(config.Path(root))
	cfg, err := config.WriteDefault(root)
	if err != nil {
		return err
	}
	if existed {
		fmt.Printf("Config already exists: %s\n", config.Path(root))
	} else {
		fmt.Printf("Created %s\n", config.Path(root))
	}

	statePath := state.FilePath(root, cfg)
	if fileExists(statePath) {
		fmt.Printf("State already exists: %s\n", statePath)
		return nil
	}
	if _, err := state.Save(root, cfg, state.NewInitial(time.Now())); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", statePath)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
