// Package preflight validates that the external package manager is available
// before any work starts.
package preflight

import (
	"fmt"
	"os/exec"

	"github.com/ajxudir/pbrew/pkg/verbose"
)

// CommandResolutionHints maps binary names to installation instructions shown
// when a required binary is missing from PATH.
var CommandResolutionHints = map[string]string{
	"brew": "Install Homebrew: https://brew.sh",
}

// lookPathFunc resolves a binary on PATH. It can be replaced with a mock
// implementation for testing.
var lookPathFunc = exec.LookPath

// ValidationError represents a missing binary with resolution hints.
//
// Fields:
//   - Command: The name of the missing binary
//   - Hint: Installation instructions (empty if no hint is available)
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns a formatted error message with resolution instructions.
//
// If a hint is available, it is included in the resolution section.
// Otherwise generic PATH guidance is given.
//
// Returns:
//   - string: Formatted message including the binary name and resolution
func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, e.Hint)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: Ensure '%s' is installed and available in your PATH.", e.Command, e.Command)
}

// CheckBrew verifies the package manager binary is resolvable on PATH.
//
// This is the availability probe run at the start of every command; a missing
// binary is fatal before any work is scheduled.
//
// Parameters:
//   - bin: The binary name or path to probe (typically "brew")
//
// Returns:
//   - error: *ValidationError with an installation hint when missing, nil otherwise
func CheckBrew(bin string) error {
	path, err := lookPathFunc(bin)
	if err != nil {
		return &ValidationError{Command: bin, Hint: CommandResolutionHints[bin]}
	}

	verbose.Printf("resolved %s -> %s", bin, path)
	return nil
}
