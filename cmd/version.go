package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/pbrew/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run:   runVersion,
}

// runVersion executes the version command to display build and version information.
//
// Outputs the Go version, build date, git commit hash, and semantic version
// to stdout.
func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Printf("  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Printf("  Git:     %s\n", GitCommit)
	}
	fmt.Printf("  Version: %s\n", Version)
}

// GetVersion returns the current version string.
//
// Returns the semantic version set at build time, or "dev" for development builds.
//
// Returns:
//   - string: Version string (e.g., "1.0.0", "dev")
func GetVersion() string {
	return Version
}
