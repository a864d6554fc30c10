package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/campreserv/ralph/internal/config"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Render the project's task file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return renderDoc(func(cfg *config.Config) string { return cfg.TaskFile })
	},
}

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Render the project's phases file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return renderDoc(func(cfg *config.Config) string { return cfg.PhasesFile })
	},
}

func renderDoc(pick func(*config.Config) string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	path := pick(cfg)
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project config
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(string(data))
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	fmt.Print(out)
	return nil
}
