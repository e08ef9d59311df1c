// Package errors defines the exit-code taxonomy for pbrew commands and the
// error types used to carry exit codes out of cobra command handlers.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates all operations completed successfully,
	// including runs where there was nothing to do.
	ExitSuccess = 0

	// ExitPartialFailure indicates some packages failed while others
	// succeeded during a parallel phase.
	ExitPartialFailure = 1

	// ExitFailure indicates all operations failed or a critical error
	// occurred: Homebrew missing, a query failed, or every package in a
	// parallel phase failed.
	ExitFailure = 2

	// ExitUsageError indicates a configuration or usage error. The command
	// could not proceed, and no external invocation was attempted.
	ExitUsageError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use the Exit* constants)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	// Standard codes: 0=success, 1=partial failure, 2=failure, 3=usage error.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitPartialFailure, ExitFailure, ExitUsageError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err is a PartialSuccessError, returns ExitPartialFailure.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return ExitPartialFailure
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// PartialSuccessError indicates that some packages succeeded while others failed.
//
// This is used when a parallel phase processes multiple packages or batches
// and some invocations succeed while others fail. The command should exit
// with ExitPartialFailure.
//
// Fields:
//   - Succeeded: Count of packages that completed successfully
//   - Failed: Names of packages that failed
type PartialSuccessError struct {
	// Succeeded is the number of packages that completed successfully.
	Succeeded int

	// Failed contains the names of all packages that failed.
	Failed []string
}

// Error implements the error interface.
//
// Returns a summary message in the format "X succeeded, Y failed".
//
// Returns:
//   - string: Summary of succeeded and failed package counts
func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, len(e.Failed))
}

// NewPartialSuccessError creates a PartialSuccessError with the given counts.
//
// Parameters:
//   - succeeded: Number of packages that completed successfully
//   - failed: Names of packages that failed
//
// Returns:
//   - *PartialSuccessError: New partial success error
func NewPartialSuccessError(succeeded int, failed []string) *PartialSuccessError {
	return &PartialSuccessError{Succeeded: succeeded, Failed: failed}
}

// IsPartialSuccess checks if err is a PartialSuccessError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *PartialSuccessError: The PartialSuccessError if err is one, nil otherwise
//   - bool: true if err is a PartialSuccessError
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}
