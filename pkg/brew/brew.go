// Package brew wraps the Homebrew query surface pbrew consumes: the outdated
// package query, the installed package listing, and the construction of
// verb invocations. It contains no orchestration logic.
package brew

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ajxudir/pbrew/pkg/cmdexec"
	"github.com/ajxudir/pbrew/pkg/verbose"
)

// Package is one entry from Homebrew's outdated report.
//
// Fields:
//   - Name: The package name (formula or cask)
//   - InstalledVersions: Versions currently installed, newest last; may be empty
//   - CurrentVersion: The newest available version; may be empty
type Package struct {
	Name              string   `json:"name"`
	InstalledVersions []string `json:"installed_versions"`
	CurrentVersion    string   `json:"current_version"`
}

// OutdatedReport mirrors the JSON document emitted by `brew outdated --json`.
type OutdatedReport struct {
	Formulae []Package `json:"formulae"`
	Casks    []Package `json:"casks"`
}

// runQueryFunc is the gateway used for query invocations.
// It can be replaced with a mock implementation for testing.
var runQueryFunc = cmdexec.Run

// Spec builds a Homebrew invocation: the verb followed by package names.
//
// Parameters:
//   - bin: The Homebrew binary name or path
//   - verb: The subcommand (e.g., "install", "fetch")
//   - names: Package names appended after the verb, in order
//
// Returns:
//   - cmdexec.Spec: The assembled invocation
func Spec(bin, verb string, names ...string) cmdexec.Spec {
	args := make([]string, 0, len(names)+1)
	args = append(args, verb)
	args = append(args, names...)
	return cmdexec.Spec{Name: bin, Args: args}
}

// Outdated queries Homebrew for outdated packages.
//
// It performs the following operations:
//   - Step 1: Invokes `<bin> outdated --json` through the gateway
//   - Step 2: Fails on launch errors or a non-zero exit
//   - Step 3: Parses the JSON report; malformed output is a fatal parse error
//
// The returned slice lists formulae first, then casks, each preserving
// document order.
//
// Parameters:
//   - ctx: Context for cancellation
//   - bin: The Homebrew binary name or path
//
// Returns:
//   - []Package: Outdated packages in formulae-then-casks order
//   - error: Query launch/exit failures or JSON parse errors
func Outdated(ctx context.Context, bin string) ([]Package, error) {
	outcome, err := runQueryFunc(ctx, Spec(bin, "outdated", "--json"))
	if err != nil {
		return nil, fmt.Errorf("failed to query outdated packages: %w", err)
	}
	if !outcome.Success {
		return nil, fmt.Errorf("failed to query outdated packages: %s", strings.TrimSpace(string(outcome.Stderr)))
	}

	report, err := ParseOutdated(outcome.Stdout)
	if err != nil {
		return nil, err
	}

	verbose.Printf("outdated query returned %d formulae, %d casks", len(report.Formulae), len(report.Casks))

	packages := make([]Package, 0, len(report.Formulae)+len(report.Casks))
	packages = append(packages, report.Formulae...)
	packages = append(packages, report.Casks...)
	return packages, nil
}

// ParseOutdated decodes the JSON document from `brew outdated --json`.
//
// Parameters:
//   - data: Raw JSON bytes from the query's standard output
//
// Returns:
//   - *OutdatedReport: The decoded report
//   - error: A parse error when the document is malformed
func ParseOutdated(data []byte) (*OutdatedReport, error) {
	var report OutdatedReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse JSON output from brew outdated: %w", err)
	}
	return &report, nil
}

// Names flattens packages to their names, preserving order.
//
// Parameters:
//   - packages: Packages from an outdated query
//
// Returns:
//   - []string: Package names in input order
func Names(packages []Package) []string {
	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name)
	}
	return names
}

// Installed queries Homebrew for currently installed formulae.
//
// The listing is restricted to formulae (`list --formula -1`); output is one
// package name per line, and blank lines are discarded after trimming.
//
// Parameters:
//   - ctx: Context for cancellation
//   - bin: The Homebrew binary name or path
//
// Returns:
//   - []string: Installed formula names in listing order
//   - error: Query launch/exit failures
func Installed(ctx context.Context, bin string) ([]string, error) {
	outcome, err := runQueryFunc(ctx, Spec(bin, "list", "--formula", "-1"))
	if err != nil {
		return nil, fmt.Errorf("failed to query installed packages: %w", err)
	}
	if !outcome.Success {
		return nil, fmt.Errorf("failed to query installed packages: %s", strings.TrimSpace(string(outcome.Stderr)))
	}

	var names []string
	for _, line := range strings.Split(string(outcome.Stdout), "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			names = append(names, name)
		}
	}

	verbose.Printf("installed query returned %d formulae", len(names))
	return names, nil
}
