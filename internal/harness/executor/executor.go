// Package executor drives each test case through transpile, compile-and-run
// and artifact disposal, strictly one at a time.
package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"skharness/internal/harness/corpus"
	"skharness/internal/harness/engine"
	"skharness/internal/harness/observer"
	"skharness/internal/harness/result"
	"skharness/internal/harness/retention"
	"skharness/internal/harness/spec"
	"skharness/internal/harness/workspace"
	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

// DefaultToolchain compiles and runs the generated C in one step.
const DefaultToolchain = "tcc {flags} -run {src}"

// Config holds executor dependencies.
type Config struct {
	Engine engine.Engine
	Layout workspace.Layout
	// TranspilerPath must be absolute; children run inside the scratch root.
	TranspilerPath string
	Toolchain      engine.Template
	Policy         retention.Policy
	// Console receives the per-test header and the children's stdout.
	// Defaults to os.Stdout.
	Console io.Writer
	Metrics observer.Recorder
}

// Executor owns the sequence counter of one run. It is not safe for
// concurrent use: the transpiler's fixed output path has a single writer.
type Executor struct {
	cfg Config
	seq int
}

// NewExecutor validates cfg and returns an executor whose first test case
// gets sequence number 1.
func NewExecutor(cfg Config) (*Executor, error) {
	if cfg.Engine == nil {
		return nil, appErr.ValidationError("engine", "required")
	}
	if cfg.Layout.RootDir == "" {
		return nil, appErr.ValidationError("layout.root_dir", "required")
	}
	if cfg.TranspilerPath == "" {
		return nil, appErr.ValidationError("transpiler_path", "required")
	}
	if !filepath.IsAbs(cfg.TranspilerPath) {
		return nil, appErr.ValidationError("transpiler_path", "must be absolute")
	}
	if cfg.Toolchain.Empty() {
		return nil, appErr.ValidationError("toolchain", "required")
	}
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observer.NoopRecorder{}
	}
	return &Executor{cfg: cfg}, nil
}

// Seq returns the last sequence number handed out.
func (e *Executor) Seq() int {
	return e.seq
}

// RunAll executes every snippet of src in order. Per-test failures are
// absorbed; the returned slice has one entry per snippet.
func (e *Executor) RunAll(ctx context.Context, src corpus.Source) []result.TestcaseResult {
	snippets := src.Snippets()
	out := make([]result.TestcaseResult, 0, len(snippets))
	for _, snippet := range snippets {
		out = append(out, e.Execute(ctx, snippet))
	}
	return out
}

// Execute runs one test case to a terminal state. It never returns an error:
// every failure past the build check is reported and recovered here.
func (e *Executor) Execute(ctx context.Context, snippet string) result.TestcaseResult {
	e.seq++
	seq := e.seq
	ctx = logger.WithSeq(ctx, seq)
	layout := e.cfg.Layout

	tc := &testcase{res: result.TestcaseResult{
		Seq:       seq,
		Snippet:   snippet,
		InputPath: layout.InputPath(seq),
		States:    []result.State{result.StatePending},
	}}
	fmt.Fprintf(e.cfg.Console, "test %03d %s: ", seq, snippet)

	// A previous test or run may have left the fixed output behind; the
	// toolchain must only ever see what this transpile produced.
	if err := workspace.RemoveIfExists(layout.OutputPath()); err != nil {
		tc.warn(ctx, "stale output artifact not removed", err)
	}

	if err := os.WriteFile(tc.res.InputPath, []byte(snippet), 0644); err != nil {
		werr := appErr.Wrapf(err, appErr.ArtifactWriteFailed, "write input artifact: %v", err).
			WithDetail("path", tc.res.InputPath)
		logger.Error(ctx, "input artifact not written", zap.Error(werr))
		fmt.Fprintf(e.cfg.Console, "input write failed: %v\n", err)
		e.cleanInput(ctx, tc)
		return tc.res
	}
	tc.advance(ctx, result.StateWritten)

	if !e.transpile(ctx, tc) {
		// A failing transpiler may still have written part of output.c.
		if err := workspace.RemoveIfExists(layout.OutputPath()); err != nil {
			tc.warn(ctx, "partial output artifact not removed", err)
		}
		e.cleanInput(ctx, tc)
		return tc.res
	}

	e.compileAndRun(ctx, tc)
	e.dispose(ctx, tc)
	e.cleanInput(ctx, tc)
	return tc.res
}

func (e *Executor) transpile(ctx context.Context, tc *testcase) bool {
	runRes, err := e.cfg.Engine.Run(ctx, spec.RunSpec{
		Stage:   spec.StageTranspile,
		Seq:     tc.res.Seq,
		WorkDir: e.cfg.Layout.RootDir,
		Cmd:     []string{e.cfg.TranspilerPath, tc.res.InputPath},
		Stdout:  e.cfg.Console,
	})
	tc.res.TranspileExitCode = runRes.ExitCode
	ok := err == nil && runRes.ExitCode == 0
	e.cfg.Metrics.ObserveTranspile(ctx, tc.res.Seq, ok, runRes.Duration)

	if ok {
		tc.advance(ctx, result.StateTranspiledOK)
		return true
	}

	tc.advance(ctx, result.StateTranspileFailed)
	if err != nil {
		serr := appErr.Wrap(err, appErr.TranspilerStartFailed).WithDetail("snippet", tc.res.Snippet)
		logger.Warn(ctx, "transpiler did not start", zap.String("snippet", tc.res.Snippet), zap.Error(serr))
		fmt.Fprintf(e.cfg.Console, "transpile failed for %q: %v\n", tc.res.Snippet, err)
		return false
	}
	ferr := appErr.Newf(appErr.TranspileFailed, "transpiler exited with status %d", runRes.ExitCode).
		WithDetail("snippet", tc.res.Snippet)
	logger.Warn(ctx, "transpile failed",
		zap.String("snippet", tc.res.Snippet),
		zap.Int("exit_code", runRes.ExitCode),
		zap.Error(ferr),
	)
	fmt.Fprintf(e.cfg.Console, "transpile failed for %q (exit status %d)\n", tc.res.Snippet, runRes.ExitCode)
	return false
}

// compileAndRun hands the generated C to the toolchain. Its exit status is
// recorded but never judged; the printed output is for a human to read.
func (e *Executor) compileAndRun(ctx context.Context, tc *testcase) {
	cmd := e.cfg.Toolchain.Expand(e.cfg.Layout.OutputPath(), e.cfg.Policy.ToolchainFlags())
	runRes, err := e.cfg.Engine.Run(ctx, spec.RunSpec{
		Stage:   spec.StageToolchain,
		Seq:     tc.res.Seq,
		WorkDir: e.cfg.Layout.RootDir,
		Cmd:     cmd,
		Stdout:  e.cfg.Console,
	})
	tc.res.ToolchainInvoked = true
	tc.res.ToolchainExitCode = runRes.ExitCode
	if err != nil {
		logger.Warn(ctx, "toolchain did not start", zap.Strings("cmd", cmd), zap.Error(err))
	}
	e.cfg.Metrics.ObserveToolchain(ctx, tc.res.Seq, runRes.ExitCode, runRes.Duration)
	tc.advance(ctx, result.StateExecuted)
}

func (e *Executor) dispose(ctx context.Context, tc *testcase) {
	retained, err := e.cfg.Policy.Apply(ctx, e.cfg.Layout, tc.res.Seq)
	if err != nil {
		tc.warn(ctx, "output artifact disposal failed", err)
	}
	tc.res.RetainedPath = retained
	if e.cfg.Policy.Enabled() {
		tc.advance(ctx, result.StateRetained)
		return
	}
	tc.advance(ctx, result.StateDiscarded)
}

func (e *Executor) cleanInput(ctx context.Context, tc *testcase) {
	if err := workspace.RemoveIfExists(tc.res.InputPath); err != nil {
		tc.warn(ctx, "input artifact not removed", err)
	}
	tc.advance(ctx, result.StateCleaned)
}

type testcase struct {
	res result.TestcaseResult
}

func (tc *testcase) advance(ctx context.Context, to result.State) {
	from := tc.res.Final()
	if !result.CanTransition(from, to) {
		// Programming error.
		logger.Error(ctx, "invalid state transition", zap.String("from", string(from)), zap.String("to", string(to)))
	}
	tc.res.States = append(tc.res.States, to)
}

func (tc *testcase) warn(ctx context.Context, msg string, err error) {
	logger.Warn(ctx, msg, zap.Error(err))
	tc.res.Warnings = append(tc.res.Warnings, err.Error())
}
