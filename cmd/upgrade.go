package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/brew"
	"github.com/ajxudir/pbrew/pkg/engine"
	"github.com/ajxudir/pbrew/pkg/errors"
	"github.com/ajxudir/pbrew/pkg/warnings"
)

var upgradeJobsFlag int

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade outdated packages, pre-fetching downloads in parallel",
	Long: `Update package definitions, query outdated packages, fetch their downloads
in parallel, then run a single 'brew upgrade' that uses the pre-fetched files.`,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().IntVarP(&upgradeJobsFlag, "jobs", "j", engine.DefaultJobs, "Maximum concurrent fetch operations")
}

// runUpgrade executes the upgrade command.
//
// It performs the following operations:
//   - Step 1: Verifies Homebrew is available
//   - Step 2: Runs 'brew update' to refresh package definitions
//   - Step 3: Queries outdated packages; an empty result means up to date
//   - Step 4: Fetches every outdated package in parallel under the
//     concurrency limit; fetch failures are warnings, not fatal
//   - Step 5: Runs a single 'brew upgrade' which uses the pre-fetched files
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runUpgrade(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd, upgradeJobsFlag, 0)
	if err != nil {
		return err
	}

	if err := requireBrew(cfg); err != nil {
		return err
	}

	fmt.Println("Updating package definitions...")
	if err := runSerialPhase(cmd.Context(), brew.Spec(cfg.Brew, "update")); err != nil {
		return err
	}

	fmt.Println("Checking for outdated packages...")
	packages, err := outdatedPackagesFunc(cmd.Context(), cfg.Brew)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	if len(packages) == 0 {
		fmt.Println("✓ All packages are up to date")
		return nil
	}

	names := brew.Names(packages)
	fmt.Printf("Found %d outdated package(s): %s\n", len(names), strings.Join(names, ", "))
	fmt.Printf("Fetching packages with %d concurrent operations...\n", cfg.Jobs)

	res := runParallelPhase(cmd.Context(), cfg, engine.FetchAction, engine.Singles(names), len(names))
	if res.HasFailures() {
		// Fetch failures are non-fatal: the serial upgrade step below will
		// download anything that is missing.
		warnings.Warnf("Warning: %d package(s) failed to fetch: %s\n", len(res.Failed), strings.Join(res.Failed, ", "))
	}

	fmt.Println("Installing upgrades...")
	if err := runSerialPhase(cmd.Context(), brew.Spec(cfg.Brew, "upgrade")); err != nil {
		return err
	}

	fmt.Println("✓ Upgrade complete")
	return nil
}
