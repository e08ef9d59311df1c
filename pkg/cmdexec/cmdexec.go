// Package cmdexec provides the external command gateway for pbrew.
// It invokes a binary with an argument vector, captures exit status and
// output streams, and reports launch failures separately from non-zero exits.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ajxudir/pbrew/pkg/verbose"
)

// Spec describes a single external command invocation: the binary name plus
// an ordered argument vector. For batch operations the argument vector is the
// verb followed by all package names in the batch, in order.
//
// Fields:
//   - Name: The binary to invoke (resolved via PATH)
//   - Args: The ordered argument vector, not including the binary name
type Spec struct {
	Name string
	Args []string
}

// String returns the invocation as a single shell-like line for messages.
//
// Returns:
//   - string: The binary name followed by its space-joined arguments
func (s Spec) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Args, " ")
}

// Outcome is the structured result of a completed external command.
// It is immutable once produced.
//
// Fields:
//   - Success: Whether the process exited with status zero
//   - ExitCode: The process exit code (0 on success)
//   - Stdout: Captured standard output bytes
//   - Stderr: Captured standard error bytes
type Outcome struct {
	Success  bool
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// LaunchError indicates the external process could not be started at all,
// for example because the binary was not found or is not executable.
// A launch failure is fatal for the item being processed but never for
// sibling items.
//
// Fields:
//   - Spec: The invocation that failed to start
//   - Err: The underlying start error
type LaunchError struct {
	Spec Spec
	Err  error
}

// Error implements the error interface.
//
// Returns:
//   - string: A message naming the invocation and the underlying cause
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Spec.String(), e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying start error
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsLaunchError checks if err is a LaunchError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *LaunchError: The LaunchError if err is one, nil otherwise
//   - bool: true if err is a LaunchError
func IsLaunchError(err error) (*LaunchError, bool) {
	var le *LaunchError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// RunFunc is the function signature for gateway invocations.
//
// Implementations start the process described by spec, wait for it to
// complete, and return an Outcome. A non-zero exit code is reported through
// the Outcome's Success flag, never as an error; the error return is reserved
// for launch failures (and context cancellation).
//
// Parameters:
//   - ctx: Context for cancellation
//   - spec: The binary and argument vector to invoke
//
// Returns:
//   - Outcome: Exit status and captured output streams
//   - error: *LaunchError when the process could not be started
type RunFunc func(ctx context.Context, spec Spec) (Outcome, error)

// Run is the default gateway invocation function.
//
// This variable holds the implementation used throughout the application.
// It can be replaced with a mock implementation for testing.
var Run RunFunc = runCommand

// RunStreaming is the gateway invocation used for single non-parallel phases
// (brew update, brew upgrade) where output should stream to the terminal
// rather than be captured. It can be replaced with a mock for testing.
var RunStreaming RunFunc = runStreamingCommand

// runCommand starts the external process, waits for completion, and returns
// a structured Outcome with captured output.
//
// It performs the following operations:
//   - Step 1: Builds an exec.Cmd bound to the provided context
//   - Step 2: Captures stdout and stderr into separate buffers
//   - Step 3: Runs the process and classifies the result
//
// A non-zero exit is reported via Outcome.Success=false. Only errors that
// prevented the process from starting are returned as *LaunchError.
//
// Parameters:
//   - ctx: Context for cancellation
//   - spec: The binary and argument vector to invoke
//
// Returns:
//   - Outcome: Exit status and captured output streams
//   - error: *LaunchError when the process could not be started
func runCommand(ctx context.Context, spec Spec) (Outcome, error) {
	verbose.CommandStarted(spec.Name, spec.Args)

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := Outcome{
		Success: err == nil,
		Stdout:  stdout.Bytes(),
		Stderr:  stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Process ran and exited non-zero: an execution failure,
			// reported through the outcome rather than the error.
			outcome.ExitCode = exitErr.ExitCode()
			verbose.CommandFinished(spec.Name, false)
			return outcome, nil
		}
		verbose.CommandFinished(spec.Name, false)
		return outcome, &LaunchError{Spec: spec, Err: err}
	}

	verbose.CommandFinished(spec.Name, true)
	return outcome, nil
}

// runStreamingCommand runs the process with stdout and stderr inherited from
// the current process instead of captured.
//
// This is used for the serial update/upgrade phases where Homebrew's own
// progress output should reach the terminal directly.
//
// Parameters:
//   - ctx: Context for cancellation
//   - spec: The binary and argument vector to invoke
//
// Returns:
//   - Outcome: Exit status; output byte slices are empty
//   - error: *LaunchError when the process could not be started
func runStreamingCommand(ctx context.Context, spec Spec) (Outcome, error) {
	verbose.CommandStarted(spec.Name, spec.Args)

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			verbose.CommandFinished(spec.Name, false)
			return Outcome{ExitCode: exitErr.ExitCode()}, nil
		}
		verbose.CommandFinished(spec.Name, false)
		return Outcome{}, &LaunchError{Spec: spec, Err: err}
	}

	verbose.CommandFinished(spec.Name, true)
	return Outcome{Success: true}, nil
}
