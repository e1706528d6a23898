// Package spec defines the invocation specification for external tools.
package spec

import "io"

// Stage identifies which pipeline stage a subprocess belongs to.
type Stage string

const (
	StageBuild     Stage = "build"
	StageTranspile Stage = "transpile"
	StageToolchain Stage = "toolchain"
)

// RunSpec is the unified invocation specification for one subprocess.
// Cmd is an explicit argv; it is never passed through a shell.
type RunSpec struct {
	Stage   Stage
	Seq     int
	WorkDir string
	Cmd     []string
	Env     []string
	// Stdout and Stderr default to the harness's own streams when nil,
	// so the child inherits the console.
	Stdout io.Writer
	Stderr io.Writer
}
