// Package harness wires build verification, the scratch workspace and the
// test executor into one sequential regression run.
package harness

import (
	"context"
	"io"
	"path/filepath"

	"skharness/internal/harness/build"
	"skharness/internal/harness/corpus"
	"skharness/internal/harness/engine"
	"skharness/internal/harness/executor"
	"skharness/internal/harness/observer"
	"skharness/internal/harness/result"
	"skharness/internal/harness/retention"
	"skharness/internal/harness/workspace"
	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTranspilerPath is where the build command leaves the transpiler,
// relative to the build directory.
const DefaultTranspilerPath = "./target/debug/touka"

// Options configures one run.
type Options struct {
	Engine engine.Engine

	BuildCommand string
	// BuildDir is the initial working directory. Empty means the current one.
	BuildDir string

	// TranspilerPath is resolved against BuildDir when relative.
	TranspilerPath   string
	ToolchainCommand string

	WorkspaceRoot string
	WorkspaceName string

	Policy  retention.Policy
	Corpus  corpus.Source
	Console io.Writer
	Metrics observer.Recorder

	// RunID tags every log record; generated when empty.
	RunID string
}

// Report summarises what a run did. It carries no pass/fail verdict.
type Report struct {
	RunID       string
	ScratchRoot string
	Results     []result.TestcaseResult
	// TeardownErr is set when the scratch root could not be removed.
	TeardownErr error
}

// Run executes a full regression cycle. The only error it returns is a fatal
// one (invalid options or build failure), in which case no test case ran.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	ctx = logger.WithRunID(ctx, opts.RunID)
	report := Report{RunID: opts.RunID}

	if opts.Engine == nil {
		return report, appErr.ValidationError("engine", "required")
	}
	if opts.Corpus == nil {
		opts.Corpus = corpus.Default()
	}
	if opts.BuildCommand == "" {
		opts.BuildCommand = build.DefaultCommand
	}
	if opts.TranspilerPath == "" {
		opts.TranspilerPath = DefaultTranspilerPath
	}
	if opts.ToolchainCommand == "" {
		opts.ToolchainCommand = executor.DefaultToolchain
	}

	verifier, err := build.NewVerifier(opts.Engine, opts.BuildCommand, opts.BuildDir)
	if err != nil {
		return report, err
	}
	toolchain, err := engine.ParseTemplate(opts.ToolchainCommand)
	if err != nil {
		return report, err
	}
	transpiler, err := resolveTranspiler(opts.BuildDir, opts.TranspilerPath)
	if err != nil {
		return report, err
	}
	ws, err := workspace.NewManager(opts.WorkspaceRoot, opts.WorkspaceName)
	if err != nil {
		return report, err
	}

	if err := verifier.Verify(ctx); err != nil {
		logger.Error(ctx, "build verification failed", zap.Error(err))
		return report, err
	}

	if err := ws.Setup(ctx); err != nil {
		return report, err
	}
	report.ScratchRoot = ws.Layout().RootDir

	ex, err := executor.NewExecutor(executor.Config{
		Engine:         opts.Engine,
		Layout:         ws.Layout(),
		TranspilerPath: transpiler,
		Toolchain:      toolchain,
		Policy:         opts.Policy,
		Console:        opts.Console,
		Metrics:        opts.Metrics,
	})
	if err != nil {
		return report, err
	}

	logger.Info(ctx, "run started",
		zap.String("scratch_root", report.ScratchRoot),
		zap.String("transpiler", transpiler),
		zap.Bool("retain_c", opts.Policy.Enabled()),
	)
	report.Results = ex.RunAll(ctx, opts.Corpus)
	report.TeardownErr = ws.Teardown(ctx)
	logger.Info(ctx, "run finished", zap.Int("tests", len(report.Results)))
	return report, nil
}

func resolveTranspiler(buildDir, path string) (string, error) {
	if !filepath.IsAbs(path) && buildDir != "" {
		path = filepath.Join(buildDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", appErr.Wrapf(err, appErr.ConfigInvalid, "resolve transpiler path failed")
	}
	return abs, nil
}
