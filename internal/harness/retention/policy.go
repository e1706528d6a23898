// Package retention decides whether generated C sources are kept or discarded.
package retention

import (
	"context"
	"os"

	"skharness/internal/harness/workspace"
	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	DefaultEnv   = "SK_KEEP_C"
	DefaultValue = "1"
)

// DefaultDebugFlags are passed to the toolchain when retention is on.
var DefaultDebugFlags = []string{"-g"}

// Config selects the environment toggle and the debug flags.
type Config struct {
	Env        string   `yaml:"env"`
	Value      string   `yaml:"value"`
	DebugFlags []string `yaml:"debugFlags"`
}

// Policy is resolved once per run and never changes afterwards.
type Policy struct {
	enabled    bool
	debugFlags []string
}

// New returns a policy with a fixed enabled state.
func New(enabled bool, debugFlags []string) Policy {
	if debugFlags == nil {
		debugFlags = DefaultDebugFlags
	}
	return Policy{enabled: enabled, debugFlags: append([]string(nil), debugFlags...)}
}

// FromEnv reads the toggle through lookup (os.LookupEnv when nil). Only an
// exact match on cfg.Value enables retention.
func FromEnv(cfg Config, lookup func(string) (string, bool)) Policy {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if cfg.Env == "" {
		cfg.Env = DefaultEnv
	}
	if cfg.Value == "" {
		cfg.Value = DefaultValue
	}
	value, ok := lookup(cfg.Env)
	return New(ok && value == cfg.Value, cfg.DebugFlags)
}

// Enabled reports whether output artifacts are kept.
func (p Policy) Enabled() bool {
	return p.enabled
}

// ToolchainFlags returns the extra toolchain flags for this policy.
func (p Policy) ToolchainFlags() []string {
	if !p.enabled {
		return nil
	}
	return append([]string(nil), p.debugFlags...)
}

// Apply disposes of the output artifact of test case seq. When enabled the
// fixed-location file is renamed to its sequence-numbered name, replacing any
// stale file there; otherwise it is deleted. The returned path is the
// retained file, empty when discarded.
func (p Policy) Apply(ctx context.Context, layout workspace.Layout, seq int) (string, error) {
	src := layout.OutputPath()
	if !p.enabled {
		if err := workspace.RemoveIfExists(src); err != nil {
			return "", err
		}
		logger.Debug(ctx, "output artifact discarded", zap.String("path", src))
		return "", nil
	}

	dst := layout.RetainedPath(seq)
	if _, err := os.Stat(src); err != nil {
		return "", appErr.Wrapf(err, appErr.ArtifactRetainFailed, "retain %s: %v", src, err).
			WithDetail("from", src).
			WithDetail("to", dst)
	}
	if err := workspace.RemoveIfExists(dst); err != nil {
		logger.Warn(ctx, "stale retained artifact not removed", zap.String("path", dst), zap.Error(err))
	}
	if err := os.Rename(src, dst); err != nil {
		return "", appErr.Wrapf(err, appErr.ArtifactRetainFailed, "retain %s: %v", src, err).
			WithDetail("from", src).
			WithDetail("to", dst)
	}
	logger.Debug(ctx, "output artifact retained", zap.String("path", dst))
	return dst, nil
}
