package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"skharness/internal/harness"
	"skharness/internal/harness/corpus"
	"skharness/internal/harness/engine"
	"skharness/internal/harness/observer"
	"skharness/internal/harness/retention"
	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file (optional)")
	corpusPath := flag.String("corpus", "", "Override corpus YAML file")
	keep := flag.Bool("keep", false, "Keep generated C sources regardless of the environment toggle")
	logLevel := flag.String("log-level", "", "Override log level (debug, info, warn, error)")
	flag.Parse()

	// Config, logger and corpus errors exit with status 2 before the build runs.
	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		return appErr.ConfigInvalid.ExitCode()
	}
	if *logLevel != "" {
		appCfg.Logger.Level = *logLevel
	}
	if *corpusPath != "" {
		appCfg.Corpus.Path = *corpusPath
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return appErr.ConfigInvalid.ExitCode()
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	var source corpus.Source = corpus.Default()
	if appCfg.Corpus.Path != "" {
		list, err := corpus.Load(appCfg.Corpus.Path)
		if err != nil {
			logger.Error(ctx, "load corpus failed", zap.Error(err))
			return appErr.ExitCode(err)
		}
		source = list
	}

	policy := retention.FromEnv(appCfg.Retention, os.LookupEnv)
	if *keep {
		policy = retention.New(true, appCfg.Retention.DebugFlags)
	}

	report, err := harness.Run(ctx, harness.Options{
		Engine:           engine.NewExecEngine(nil),
		BuildCommand:     appCfg.Build.Command,
		BuildDir:         appCfg.Build.Dir,
		TranspilerPath:   appCfg.Transpiler.Path,
		ToolchainCommand: appCfg.Toolchain.Command,
		WorkspaceRoot:    appCfg.Workspace.Root,
		WorkspaceName:    appCfg.Workspace.Name,
		Policy:           policy,
		Corpus:           source,
		Console:          os.Stdout,
		Metrics:          observer.LogRecorder{},
	})
	if err != nil {
		logger.Error(ctx, "harness aborted", zap.String("run_id", report.RunID), zap.Error(err))
		return appErr.ExitCode(err)
	}
	return 0
}
