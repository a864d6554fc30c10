// Package loop implements the iteration engine: one pass through the
// configured check list, sequentially, with stop-on-failure skip
// propagation and budget/terminal guards.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/gitinfo"
	"github.com/campreserv/ralph/internal/logging"
	"github.com/campreserv/ralph/internal/state"
)

// ErrLoopComplete is returned when an iteration is requested but the loop
// has already finished successfully.
var ErrLoopComplete = errors.New("loop is already complete")

// ErrBudgetExhausted is returned when the stored iteration count has
// reached the configured maximum.
var ErrBudgetExhausted = errors.New("iteration budget exhausted")

// Runner executes iterations for one project root. Zero-value fields are
// defaulted by NewRunner; tests override Stdout/Stderr and Now.
type Runner struct {
	RootDir string
	Config  *config.Config

	// Stdout and Stderr receive the checks' output. Checks inherit the
	// invoking process's streams by default so their output interleaves
	// naturally on the terminal.
	Stdout io.Writer
	Stderr io.Writer

	// Now supplies timestamps; replaceable in tests.
	Now func() time.Time

	// DefaultTimeout bounds checks that declare no timeoutSeconds of
	// their own. Zero means unbounded.
	DefaultTimeout time.Duration

	// RecordGit controls whether iterations are stamped with a git
	// snapshot of the project root.
	RecordGit bool

	log zerolog.Logger
}

// NewRunner returns a Runner with the standard defaults.
func NewRunner(rootDir string, cfg *config.Config) *Runner {
	return &Runner{
		RootDir:   rootDir,
		Config:    cfg,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Now:       time.Now,
		RecordGit: true,
		log:       logging.Component("loop"),
	}
}

// RunIteration executes one full pass through the configured checks and
// appends the resulting Iteration to st. Only the in-memory state is
// mutated; persisting it is the caller's job, which lets tests inspect
// results before any disk I/O happens.
func (r *Runner) RunIteration(ctx context.Context, st *state.State) (*state.Iteration, error) {
	if st.Status == state.StatusComplete {
		return nil, ErrLoopComplete
	}
	if len(st.Iterations) >= r.Config.MaxIterations {
		return nil, fmt.Errorf("%w: %d iterations recorded, maxIterations is %d",
			ErrBudgetExhausted, len(st.Iterations), r.Config.MaxIterations)
	}

	index := len(st.Iterations) + 1
	startedAt := r.now()

	r.log.Info().
		Int("iteration", index).
		Int("max_iterations", r.Config.MaxIterations).
		Msg("starting iteration")

	var git *state.GitInfo
	if r.RecordGit {
		if snap, err := gitinfo.Capture(r.RootDir); err == nil {
			git = &state.GitInfo{Branch: snap.Branch, Commit: snap.Commit, Dirty: snap.Dirty}
		}
	}

	shouldSkip := false
	checks := make([]state.CheckResult, 0, len(r.Config.Checks))

	for _, chk := range r.Config.Checks {
		if shouldSkip {
			instant := r.now()
			checks = append(checks, state.CheckResult{
				Name:       chk.Name,
				Command:    chk.Command,
				Status:     state.CheckSkipped,
				ExitCode:   nil,
				StartedAt:  instant,
				FinishedAt: instant,
				DurationMs: 0,
			})
			r.log.Debug().Str("check", chk.Name).Msg("check skipped")
			continue
		}

		result := r.runCheck(ctx, chk)
		if result.Status == state.CheckFailed && r.Config.StopOnFailure {
			shouldSkip = true
		}
		checks = append(checks, result)
	}

	finishedAt := r.now()

	status := state.IterationPassed
	for _, cr := range checks {
		if cr.Status != state.CheckPassed {
			// A skip is not a pass.
			status = state.IterationFailed
			break
		}
	}

	st.Iterations = append(st.Iterations, state.Iteration{
		Index:      index,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Status:     status,
		Checks:     checks,
		Git:        git,
	})

	if status == state.IterationPassed {
		st.Status = state.StatusComplete
	} else {
		st.Status = state.StatusFailed
	}
	st.UpdatedAt = finishedAt

	r.log.Info().
		Int("iteration", index).
		Str("status", string(status)).
		Dur("elapsed", finishedAt.Sub(startedAt)).
		Msg("iteration finished")

	return &st.Iterations[len(st.Iterations)-1], nil
}

// Result summarizes a multi-iteration Run.
type Result struct {
	Iterations int
	Completed  bool
}

// Run executes iterations back-to-back until the loop completes, the
// budget is exhausted, the context is cancelled, or (when untilPass is
// false) the first failed iteration. persist is called after every
// iteration so history survives an interrupt mid-run.
func (r *Runner) Run(ctx context.Context, st *state.State, untilPass bool, persist func(*state.State) error) (*Result, error) {
	res := &Result{}

	for {
		if st.Status == state.StatusComplete {
			res.Completed = true
			return res, nil
		}
		if len(st.Iterations) >= r.Config.MaxIterations {
			return res, nil
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		it, err := r.RunIteration(ctx, st)
		if err != nil {
			return res, err
		}
		res.Iterations++

		if persist != nil {
			if err := persist(st); err != nil {
				return res, err
			}
		}

		if it.Status == state.IterationFailed && !untilPass {
			return res, nil
		}
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}
