// Package result defines subprocess outcomes and per-test lifecycle states.
package result

import "time"

// State is a step in the per-test lifecycle.
//
//	PENDING -> WRITTEN -> TRANSPILED_OK | TRANSPILE_FAILED
//	TRANSPILED_OK -> EXECUTED -> RETAINED | DISCARDED
//	TRANSPILE_FAILED | RETAINED | DISCARDED -> CLEANED
//
// PENDING -> CLEANED is taken only when the input artifact cannot be written.
type State string

const (
	StatePending         State = "PENDING"
	StateWritten         State = "WRITTEN"
	StateTranspiledOK    State = "TRANSPILED_OK"
	StateTranspileFailed State = "TRANSPILE_FAILED"
	StateExecuted        State = "EXECUTED"
	StateRetained        State = "RETAINED"
	StateDiscarded       State = "DISCARDED"
	StateCleaned         State = "CLEANED"
)

var transitions = map[State][]State{
	StatePending:         {StateWritten, StateCleaned},
	StateWritten:         {StateTranspiledOK, StateTranspileFailed},
	StateTranspiledOK:    {StateExecuted},
	StateExecuted:        {StateRetained, StateDiscarded},
	StateTranspileFailed: {StateCleaned},
	StateRetained:        {StateCleaned},
	StateDiscarded:       {StateCleaned},
}

// CanTransition reports whether moving from one state to another is allowed.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists from s.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// ExecResult captures raw data of one finished subprocess.
type ExecResult struct {
	ExitCode int
	Duration time.Duration
}

// TestcaseResult describes how one test case moved through the pipeline.
// It is bookkeeping only: a zero toolchain exit code does not mean the
// program printed the right value.
type TestcaseResult struct {
	Seq               int
	Snippet           string
	InputPath         string
	States            []State
	TranspileExitCode int
	ToolchainInvoked  bool
	ToolchainExitCode int
	RetainedPath      string
	// Warnings collects non-fatal housekeeping failures.
	Warnings []string
}

// Final returns the last recorded state.
func (r TestcaseResult) Final() State {
	if len(r.States) == 0 {
		return StatePending
	}
	return r.States[len(r.States)-1]
}

// TranspileFailed reports whether the run stopped at the transpile step.
func (r TestcaseResult) TranspileFailed() bool {
	for _, s := range r.States {
		if s == StateTranspileFailed {
			return true
		}
	}
	return false
}
