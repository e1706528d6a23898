package engine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"skharness/internal/harness/result"
	"skharness/internal/harness/spec"
	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

type execEngine struct {
	env []string
}

// NewExecEngine creates an engine that runs commands directly with os/exec.
// env is appended to the harness's own environment for every child.
func NewExecEngine(env []string) Engine {
	return &execEngine{env: env}
}

func (e *execEngine) Run(ctx context.Context, runSpec spec.RunSpec) (result.ExecResult, error) {
	if err := validateRunSpec(runSpec); err != nil {
		return result.ExecResult{}, err
	}

	cmd := exec.CommandContext(ctx, runSpec.Cmd[0], runSpec.Cmd[1:]...)
	cmd.Dir = runSpec.WorkDir
	cmd.Stdin = nil
	cmd.Stdout = runSpec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = runSpec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(e.env) > 0 || len(runSpec.Env) > 0 {
		cmd.Env = append(append(os.Environ(), e.env...), runSpec.Env...)
	}

	logger.Debug(ctx, "exec subprocess",
		zap.String("stage", string(runSpec.Stage)),
		zap.Strings("cmd", runSpec.Cmd),
		zap.String("dir", runSpec.WorkDir),
	)

	start := time.Now()
	err := cmd.Run()
	res := result.ExecResult{Duration: time.Since(start)}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the child was terminated by a signal.
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	res.ExitCode = -1
	return res, appErr.Wrapf(err, appErr.CommandStartFailed, "run %s: %v", runSpec.Cmd[0], err).
		WithDetail("stage", string(runSpec.Stage))
}

func validateRunSpec(runSpec spec.RunSpec) error {
	if len(runSpec.Cmd) == 0 || runSpec.Cmd[0] == "" {
		return appErr.ValidationError("cmd", "required")
	}
	return nil
}
