package engine

import (
	"context"

	"skharness/internal/harness/result"
	"skharness/internal/harness/spec"
)

// Engine executes a RunSpec as a blocking subprocess.
// A returned error means the process could not be started or waited on;
// a non-zero exit status is reported in ExecResult, not as an error.
type Engine interface {
	Run(ctx context.Context, runSpec spec.RunSpec) (result.ExecResult, error)
}
