package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/campreserv/ralph/internal/config"
)

// FilePath resolves the state file path for a project root.
func FilePath(rootDir string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.StateFile) {
		return cfg.StateFile
	}
	return filepath.Join(rootDir, cfg.StateFile)
}

// Load reads the state file, synthesizing a fresh idle state if it does
// not exist. Present-but-damaged files degrade to a shorter valid history
// rather than failing: malformed iteration entries are dropped, and an
// unknown top-level status falls back to idle.
func Load(rootDir string, cfg *config.Config) (*State, error) {
	path := FilePath(rootDir, cfg)
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project config
	if err != nil {
		if os.IsNotExist(err) {
			return NewInitial(time.Now()), nil
		}
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}
	return Normalize(data, time.Now()), nil
}

// Save stamps updatedAt, creates the state file's parent directories if
// needed, and writes the full state as pretty JSON. It returns the state
// with the new timestamp so callers keep a consistent in-memory copy.
//
// There is no locking: a single writer per state file is assumed.
func Save(rootDir string, cfg *config.Config, st *State) (*State, error) {
	path := FilePath(rootDir, cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	st.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, pretty.PrettyOptions(data, &pretty.Options{Indent: "  "}), 0o644); err != nil {
		return nil, fmt.Errorf("write state %s: %w", path, err)
	}
	return st, nil
}

// Remove deletes the state file if present; missing is a no-op.
func Remove(rootDir string, cfg *config.Config) error {
	err := os.Remove(FilePath(rootDir, cfg))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// Normalize parses raw state JSON, keeping whatever is salvageable.
// now supplies fallback timestamps for damaged or missing fields.
func Normalize(data []byte, now time.Time) *State {
	st := NewInitial(now)

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return st
	}

	switch Status(doc.Get("status").String()) {
	case StatusIdle, StatusFailed, StatusComplete:
		st.Status = Status(doc.Get("status").String())
	}

	if t, err := time.Parse(time.RFC3339, doc.Get("createdAt").String()); err == nil {
		st.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, doc.Get("updatedAt").String()); err == nil {
		st.UpdatedAt = t
	}

	for _, entry := range doc.Get("iterations").Array() {
		if it, ok := normalizeIteration(entry); ok {
			st.Iterations = append(st.Iterations, it)
		}
	}

	return st
}

func normalizeIteration(v gjson.Result) (Iteration, bool) {
	if !v.IsObject() {
		return Iteration{}, false
	}

	index := v.Get("index")
	if index.Type != gjson.Number || index.Int() < 1 {
		return Iteration{}, false
	}

	status := IterationStatus(v.Get("status").String())
	if status != IterationPassed && status != IterationFailed {
		return Iteration{}, false
	}

	startedAt, err := time.Parse(time.RFC3339, v.Get("startedAt").String())
	if err != nil {
		return Iteration{}, false
	}
	finishedAt, err := time.Parse(time.RFC3339, v.Get("finishedAt").String())
	if err != nil {
		return Iteration{}, false
	}

	checksVal := v.Get("checks")
	if !checksVal.IsArray() {
		return Iteration{}, false
	}

	it := Iteration{
		Index:      int(index.Int()),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Status:     status,
		Checks:     []CheckResult{},
	}

	for _, cv := range checksVal.Array() {
		cr, ok := normalizeCheck(cv)
		if !ok {
			// A damaged check record invalidates the whole iteration:
			// partial check lists would break the order guarantee.
			return Iteration{}, false
		}
		it.Checks = append(it.Checks, cr)
	}

	if g := v.Get("git"); g.IsObject() {
		branch := g.Get("branch").String()
		commit := g.Get("commit").String()
		if branch != "" || commit != "" {
			it.Git = &GitInfo{Branch: branch, Commit: commit, Dirty: g.Get("dirty").Bool()}
		}
	}

	return it, true
}

func normalizeCheck(v gjson.Result) (CheckResult, bool) {
	if !v.IsObject() {
		return CheckResult{}, false
	}

	name := v.Get("name").String()
	command := v.Get("command").String()
	if name == "" || command == "" {
		return CheckResult{}, false
	}

	status := CheckStatus(v.Get("status").String())
	if status != CheckPassed && status != CheckFailed && status != CheckSkipped {
		return CheckResult{}, false
	}

	startedAt, err := time.Parse(time.RFC3339, v.Get("startedAt").String())
	if err != nil {
		return CheckResult{}, false
	}
	finishedAt, err := time.Parse(time.RFC3339, v.Get("finishedAt").String())
	if err != nil {
		return CheckResult{}, false
	}

	cr := CheckResult{
		Name:       name,
		Command:    command,
		Status:     status,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		DurationMs: v.Get("durationMs").Int(),
		TimedOut:   v.Get("timedOut").Bool(),
	}

	exitCode := v.Get("exitCode")
	switch {
	case exitCode.Type == gjson.Number:
		code := int(exitCode.Int())
		cr.ExitCode = &code
	case status == CheckSkipped:
		// null exit code is the contract for skipped checks
	default:
		return CheckResult{}, false
	}

	return cr, true
}
