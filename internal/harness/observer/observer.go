// Package observer defines logging and metrics hooks for pipeline stages.
package observer

import (
	"context"
	"time"

	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

// Recorder records per-stage observations. Observations never feed back into
// control flow.
type Recorder interface {
	ObserveTranspile(ctx context.Context, seq int, ok bool, d time.Duration)
	ObserveToolchain(ctx context.Context, seq int, exitCode int, d time.Duration)
}

// NoopRecorder discards observations.
type NoopRecorder struct{}

func (NoopRecorder) ObserveTranspile(context.Context, int, bool, time.Duration) {}

func (NoopRecorder) ObserveToolchain(context.Context, int, int, time.Duration) {}

// LogRecorder writes observations to the global logger at debug level.
// The sequence number is taken from ctx.
type LogRecorder struct{}

func (LogRecorder) ObserveTranspile(ctx context.Context, _ int, ok bool, d time.Duration) {
	logger.Debug(ctx, "transpile observed",
		zap.Bool("ok", ok),
		zap.Duration("duration", d),
	)
}

func (LogRecorder) ObserveToolchain(ctx context.Context, _ int, exitCode int, d time.Duration) {
	logger.Debug(ctx, "toolchain observed",
		zap.Int("exit_code", exitCode),
		zap.Duration("duration", d),
	)
}
