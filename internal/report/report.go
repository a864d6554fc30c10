// Package report renders human-readable and JSON summaries of a project's
// config and run state. Formatting is pure: the only filesystem touch is
// an existence probe for the task and phases files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/state"
)

// Format renders the multi-line status report.
func Format(rootDir string, cfg *config.Config, st *state.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task file:    %s (%s)\n", cfg.TaskFile, presence(rootDir, cfg.TaskFile))
	fmt.Fprintf(&b, "Phases file:  %s (%s)\n", cfg.PhasesFile, presence(rootDir, cfg.PhasesFile))
	fmt.Fprintf(&b, "Iterations:   %d/%d\n", len(st.Iterations), cfg.MaxIterations)
	fmt.Fprintf(&b, "Loop status:  %s\n", st.Status)

	last := st.LastIteration()
	if last == nil {
		b.WriteString("No iterations recorded.\n")
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Last iteration: #%d %s (%s)\n", last.Index, last.Status, FormatIterationTiming(last))
	b.WriteString(FormatChecks(last.Checks))

	return b.String()
}

// FormatIterationTiming renders an iteration's start time and duration.
func FormatIterationTiming(it *state.Iteration) string {
	elapsed := it.FinishedAt.Sub(it.StartedAt).Round(time.Millisecond)
	return fmt.Sprintf("started %s, took %s", it.StartedAt.Format("2006-01-02 15:04:05"), elapsed)
}

// FormatChecks renders one aligned line per check result, in the stored
// (declared) order.
func FormatChecks(checks []state.CheckResult) string {
	width := 0
	for _, cr := range checks {
		if len(cr.Name) > width {
			width = len(cr.Name)
		}
	}

	var b strings.Builder
	for _, cr := range checks {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, cr.Name, checkDetail(cr))
	}
	return b.String()
}

func checkDetail(cr state.CheckResult) string {
	if cr.Status == state.CheckSkipped {
		return "skipped"
	}
	detail := fmt.Sprintf("%-6s  exit %d  %dms", cr.Status, exitCode(cr), cr.DurationMs)
	if cr.TimedOut {
		detail += "  (timed out)"
	}
	return detail
}

// FormatHistory renders every stored iteration, oldest first.
func FormatHistory(st *state.State) string {
	if len(st.Iterations) == 0 {
		return "No iterations recorded.\n"
	}

	var b strings.Builder
	for i, it := range st.Iterations {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Iteration #%d %s (%s)", it.Index, it.Status, FormatIterationTiming(&it))
		if it.Git != nil {
			fmt.Fprintf(&b, " [%s@%s", it.Git.Branch, it.Git.Commit)
			if it.Git.Dirty {
				b.WriteString(", dirty")
			}
			b.WriteString("]")
		}
		b.WriteString("\n")
		b.WriteString(FormatChecks(it.Checks))
	}
	return b.String()
}

// JSON renders the raw config and state as one pretty-printed document,
// the payload behind `ralph status --json`.
func JSON(cfg *config.Config, st *state.State) ([]byte, error) {
	payload := struct {
		Config *config.Config `json:"config"`
		State  *state.State   `json:"state"`
	}{cfg, st}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal status payload: %w", err)
	}
	return pretty.PrettyOptions(data, &pretty.Options{Indent: "  "}), nil
}

func presence(rootDir, file string) string {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, file)
	}
	if _, err := os.Stat(path); err == nil {
		return "present"
	}
	return "missing"
}

func exitCode(cr state.CheckResult) int {
	if cr.ExitCode == nil {
		return 0
	}
	return *cr.ExitCode
}
