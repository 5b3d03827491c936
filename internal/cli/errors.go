// Package cli provides argument preprocessing and startup-path selection for
// the cloakd entrypoint.
//
// The entrypoint decides between two mutually exclusive paths per invocation:
// the optimized fast start, which skips the full command dispatcher, and
// regular command dispatch. This package owns that decision plus the error
// taxonomy the entrypoint maps to process exit codes.
package cli

import "fmt"

// Process exit codes. Usage failures (bad arguments, rejected profile,
// failed validation) exit with ExitUsage before the server ever starts.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError reports malformed arguments or failed command validation.
// Always maps to a usage exit; the server never starts.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, v ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, v...)}
}

// ProfileError reports a start path rejected by the active profile policy.
// Maps to a usage exit, same as UsageError.
type ProfileError struct {
	Profile string
	Command string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("the %q profile is not allowed to run the %q command; use the start-dev command for development", e.Profile, e.Command)
}

// ExitError carries a runtime-supplied exit code through the command
// dispatcher back to the process boundary.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
