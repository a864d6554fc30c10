// Package state defines the run-state model and its on-disk store.
// State is generated and owned entirely by ralph, so loading is
// deliberately defensive: malformed history entries are dropped instead of
// blocking further runs. The hand-authored config is the strict side of
// that split (see the config package).
package state

import "time"

// Status is the loop-level status.
type Status string

const (
	// StatusIdle means no completed iteration yet, or an intentional reset.
	StatusIdle Status = "idle"
	// StatusFailed means the most recent iteration had at least one
	// non-passed check.
	StatusFailed Status = "failed"
	// StatusComplete means the most recent iteration had all checks pass.
	StatusComplete Status = "complete"
)

// IterationStatus is the aggregated verdict of one iteration.
type IterationStatus string

const (
	IterationPassed IterationStatus = "passed"
	IterationFailed IterationStatus = "failed"
)

// CheckStatus is the outcome of a single check within an iteration.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckSkipped CheckStatus = "skipped"
)

// CheckResult records one check execution (or skip) within an iteration.
// Name and Command are copied from the config at execution time, so the
// record stays accurate even if the config is edited later.
type CheckResult struct {
	Name       string      `json:"name"`
	Command    string      `json:"command"`
	Status     CheckStatus `json:"status"`
	ExitCode   *int        `json:"exitCode"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	DurationMs int64       `json:"durationMs"`
	TimedOut   bool        `json:"timedOut,omitempty"`
}

// GitInfo is a best-effort snapshot of the repository at iteration start.
type GitInfo struct {
	Branch string `json:"branch"`
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

// Iteration is one full pass through the configured check list.
// Immutable once appended to State.Iterations.
type Iteration struct {
	Index      int             `json:"index"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Status     IterationStatus `json:"status"`
	Checks     []CheckResult   `json:"checks"`
	Git        *GitInfo        `json:"git,omitempty"`
}

// State is the persistent run history for one project root.
type State struct {
	Status     Status      `json:"status"`
	Iterations []Iteration `json:"iterations"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewInitial returns a fresh idle state. Deterministic given now; used for
// genuinely new projects and as the synthesized state when no file exists.
func NewInitial(now time.Time) *State {
	now = now.UTC()
	return &State{
		Status:     StatusIdle,
		Iterations: []Iteration{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// LastIteration returns the most recent iteration, or nil if none exist.
func (s *State) LastIteration() *Iteration {
	if len(s.Iterations) == 0 {
		return nil
	}
	return &s.Iterations[len(s.Iterations)-1]
}
