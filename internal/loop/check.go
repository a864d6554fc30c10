package loop

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/state"
)

// runCheck spawns the check's command through a shell in the project root
// and blocks until it exits. The process inherits the environment; stdout
// and stderr go to the Runner's writers.
func (r *Runner) runCheck(ctx context.Context, chk config.Check) state.CheckResult {
	timeout := r.DefaultTimeout
	if chk.TimeoutSeconds > 0 {
		timeout = time.Duration(chk.TimeoutSeconds) * time.Second
	}

	checkCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(checkCtx, "sh", "-c", chk.Command)
	cmd.Dir = r.RootDir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.log.Debug().Str("check", chk.Name).Str("command", chk.Command).Msg("running check")

	startedAt := r.now()
	err := cmd.Run()
	finishedAt := r.now()

	exitCode := resolveExitCode(cmd, err)
	timedOut := errors.Is(checkCtx.Err(), context.DeadlineExceeded)
	if timedOut {
		exitCode = 1
	}

	status := state.CheckFailed
	if exitCode == 0 {
		status = state.CheckPassed
	}

	result := state.CheckResult{
		Name:       chk.Name,
		Command:    chk.Command,
		Status:     status,
		ExitCode:   &exitCode,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		DurationMs: finishedAt.Sub(startedAt).Milliseconds(),
		TimedOut:   timedOut,
	}

	level := zerolog.InfoLevel
	if status == state.CheckFailed {
		level = zerolog.WarnLevel
	}
	r.log.WithLevel(level).
		Str("check", chk.Name).
		Str("status", string(status)).
		Int("exit_code", exitCode).
		Int64("duration_ms", result.DurationMs).
		Bool("timed_out", timedOut).
		Msg("check finished")

	return result
}

// resolveExitCode maps a finished command onto a numeric exit code. A
// process that cannot report one (spawn failure, signal termination) is
// treated as exit code 1: a failure, never a crash of the engine.
func resolveExitCode(cmd *exec.Cmd, runErr error) int {
	if cmd.ProcessState != nil {
		if code := cmd.ProcessState.ExitCode(); code >= 0 {
			return code
		}
		return 1
	}
	if runErr != nil {
		return 1
	}
	return 0
}
