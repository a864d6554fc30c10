package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/campreserv/ralph/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit ralph.config.json",
}

var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print a config value by gjson path (e.g. checks.1.command)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a config value in place, validating the result",
	Long: `Edit one value in ralph.config.json without rewriting the rest of the
file. The value is interpreted as JSON when it parses as JSON (numbers,
booleans, arrays, objects) and as a string otherwise. The edited document
must still pass config validation or nothing is written.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigGet(_ *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(config.Path(root))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	res := gjson.GetBytes(data, args[0])
	if !res.Exists() {
		return fmt.Errorf("no value at %q", args[0])
	}
	if res.Type == gjson.String {
		fmt.Println(res.String())
	} else {
		fmt.Println(res.Raw)
	}
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	path, value := args[0], args[1]

	configPath := config.Path(root)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var updated []byte
	if json.Valid([]byte(value)) {
		updated, err = sjson.SetRawBytes(data, path, []byte(value))
	} else {
		updated, err = sjson.SetBytes(data, path, value)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}

	// Refuse edits that would leave an invalid config on disk.
	if _, err := config.Parse(updated); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, updated, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Set %s in %s\n", path, configPath)
	return nil
}
