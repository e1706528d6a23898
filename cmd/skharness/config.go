package main

import (
	"fmt"
	"os"

	"skharness/internal/harness"
	"skharness/internal/harness/build"
	"skharness/internal/harness/executor"
	"skharness/internal/harness/retention"
	"skharness/internal/harness/workspace"
	"skharness/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

// BuildConfig holds the upstream build settings.
type BuildConfig struct {
	Command string `yaml:"command"`
	Dir     string `yaml:"dir"`
}

// TranspilerConfig holds the transpiler location.
type TranspilerConfig struct {
	Path string `yaml:"path"`
}

// ToolchainConfig holds the C compile-and-run command template.
type ToolchainConfig struct {
	Command string `yaml:"command"`
}

// WorkspaceConfig holds scratch root settings.
type WorkspaceConfig struct {
	Root string `yaml:"root"`
	Name string `yaml:"name"`
}

// CorpusConfig points at an optional snippet file.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// AppConfig holds harness config.
type AppConfig struct {
	Logger     logger.Config    `yaml:"logger"`
	Build      BuildConfig      `yaml:"build"`
	Transpiler TranspilerConfig `yaml:"transpiler"`
	Toolchain  ToolchainConfig  `yaml:"toolchain"`
	Workspace  WorkspaceConfig  `yaml:"workspace"`
	Retention  retention.Config `yaml:"retention"`
	Corpus     CorpusConfig     `yaml:"corpus"`
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

// loadAppConfig reads path when set; an empty path means defaults only.
func loadAppConfig(path string) (AppConfig, error) {
	cfg := AppConfig{}
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "console"
	}
	if cfg.Build.Command == "" {
		cfg.Build.Command = build.DefaultCommand
	}
	if cfg.Transpiler.Path == "" {
		cfg.Transpiler.Path = harness.DefaultTranspilerPath
	}
	if cfg.Toolchain.Command == "" {
		cfg.Toolchain.Command = executor.DefaultToolchain
	}
	if cfg.Workspace.Name == "" {
		cfg.Workspace.Name = workspace.DefaultName
	}
	if cfg.Retention.Env == "" {
		cfg.Retention.Env = retention.DefaultEnv
	}
	if cfg.Retention.Value == "" {
		cfg.Retention.Value = retention.DefaultValue
	}
	if cfg.Retention.DebugFlags == nil {
		cfg.Retention.DebugFlags = append([]string(nil), retention.DefaultDebugFlags...)
	}
}
