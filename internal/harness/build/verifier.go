// Package build runs the upstream build command that produces the transpiler.
package build

import (
	"context"

	"skharness/internal/harness/engine"
	"skharness/internal/harness/spec"
	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

// DefaultCommand builds the transpiler binary from the initial working directory.
const DefaultCommand = "cargo build"

// Verifier checks that the transpiler builds before any test case runs.
type Verifier struct {
	eng engine.Engine
	cmd []string
	dir string
}

// NewVerifier parses line into an argv. dir is the directory the build
// runs in; empty means the harness's current directory.
func NewVerifier(eng engine.Engine, line string, dir string) (*Verifier, error) {
	if eng == nil {
		return nil, appErr.ValidationError("engine", "required")
	}
	cmd, err := engine.SplitCommand(line)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.BuildCommandInvalid)
	}
	return &Verifier{eng: eng, cmd: cmd, dir: dir}, nil
}

// Command returns the argv the verifier runs.
func (v *Verifier) Command() []string {
	return append([]string(nil), v.cmd...)
}

// Verify runs the build once and blocks until it exits. Any non-zero exit or
// start failure is a BuildFailed error; there is no retry.
func (v *Verifier) Verify(ctx context.Context) error {
	logger.Info(ctx, "building transpiler", zap.Strings("cmd", v.cmd))

	res, err := v.eng.Run(ctx, spec.RunSpec{
		Stage:   spec.StageBuild,
		WorkDir: v.dir,
		Cmd:     v.cmd,
	})
	if err != nil {
		return appErr.Wrapf(err, appErr.BuildFailed, "build command could not run: %v", err).
			WithDetail("cmd", v.cmd)
	}
	if res.ExitCode != 0 {
		return appErr.Newf(appErr.BuildFailed, "build command exited with status %d", res.ExitCode).
			WithDetail("cmd", v.cmd).
			WithDetail("exit_code", res.ExitCode)
	}

	logger.Info(ctx, "transpiler build ok", zap.Duration("duration", res.Duration))
	return nil
}
