// Package workspace manages the scratch directory and artifact paths of a run.
package workspace

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultName is the fixed subdirectory created under the temp root.
	DefaultName = "sk-wp"
	// OutputFileName is where the transpiler writes C source, relative to
	// its working directory. The transpiler hard-codes it; only one test
	// case may own it at a time.
	OutputFileName = "output.c"

	inputNameFormat    = "sk-%03d-test"
	retainedNameFormat = "sk-%03d-output.c"
)

// Layout describes every artifact path inside one scratch root.
type Layout struct {
	RootDir string
}

// InputPath is where the snippet for seq is written.
func (l Layout) InputPath(seq int) string {
	return filepath.Join(l.RootDir, fmt.Sprintf(inputNameFormat, seq))
}

// OutputPath is the transpiler's fixed output location.
func (l Layout) OutputPath() string {
	return filepath.Join(l.RootDir, OutputFileName)
}

// RetainedPath is the descriptive name a kept output artifact is renamed to.
func (l Layout) RetainedPath(seq int) string {
	return filepath.Join(l.RootDir, fmt.Sprintf(retainedNameFormat, seq))
}
