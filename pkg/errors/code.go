package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 20000-20099: Build verification errors
// 20100-20199: Workspace & artifact errors
// 20200-20299: Pipeline (transpile / toolchain) errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalError ErrorCode = 10001
	InvalidParams ErrorCode = 10002

	// Validation errors (10300-10399)
	ValidationFailed ErrorCode = 10300
	InvalidFormat    ErrorCode = 10301
	ConfigInvalid    ErrorCode = 10304

	// ========== Build Errors (20000-20099) ==========

	BuildFailed         ErrorCode = 20000
	BuildCommandInvalid ErrorCode = 20001

	// ========== Workspace Errors (20100-20199) ==========

	WorkspaceSetupFailed    ErrorCode = 20100
	WorkspaceTeardownFailed ErrorCode = 20101
	ArtifactWriteFailed     ErrorCode = 20102
	ArtifactCleanupFailed   ErrorCode = 20103
	ArtifactRetainFailed    ErrorCode = 20104

	// ========== Pipeline Errors (20200-20299) ==========

	TranspileFailed         ErrorCode = 20200
	TranspilerStartFailed   ErrorCode = 20201
	ToolchainCommandInvalid ErrorCode = 20202
	CommandStartFailed      ErrorCode = 20203
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:       "Success",
	InternalError: "Internal error",
	InvalidParams: "Invalid parameters",

	// Validation
	ValidationFailed: "Validation failed",
	InvalidFormat:    "Invalid format",
	ConfigInvalid:    "Invalid configuration",

	// Build
	BuildFailed:         "Transpiler build failed",
	BuildCommandInvalid: "Invalid build command",

	// Workspace
	WorkspaceSetupFailed:    "Failed to set up scratch workspace",
	WorkspaceTeardownFailed: "Failed to remove scratch workspace",
	ArtifactWriteFailed:     "Failed to write input artifact",
	ArtifactCleanupFailed:   "Failed to remove artifact",
	ArtifactRetainFailed:    "Failed to retain output artifact",

	// Pipeline
	TranspileFailed:         "Transpile failed",
	TranspilerStartFailed:   "Failed to start transpiler",
	ToolchainCommandInvalid: "Invalid toolchain command",
	CommandStartFailed:      "Failed to start command",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// ExitCode returns the process exit status used when an error with this code
// terminates the harness.
func (c ErrorCode) ExitCode() int {
	switch {
	case c == Success:
		return 0
	case c == InvalidParams, c == ConfigInvalid:
		return 2
	case c >= 10300 && c < 10400: // Validation errors
		return 2
	default:
		return 1
	}
}
