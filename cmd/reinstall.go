package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/engine"
	"github.com/ajxudir/pbrew/pkg/errors"
)

var (
	reinstallAllFlag       bool
	reinstallJobsFlag      int
	reinstallBatchSizeFlag int
)

var reinstallCmd = &cobra.Command{
	Use:   "reinstall [--all] [<packages...>]",
	Short: "Reinstall packages in parallel",
	Long: `Reinstall packages by partitioning them into batches and running the batch
reinstalls concurrently. With --all, every currently installed formula is
reinstalled and any explicit package list is ignored.`,
	RunE: runReinstall,
}

func init() {
	reinstallCmd.Flags().BoolVarP(&reinstallAllFlag, "all", "a", false, "Reinstall all installed packages")
	reinstallCmd.Flags().IntVarP(&reinstallJobsFlag, "jobs", "j", engine.DefaultJobs, "Maximum concurrent reinstall operations")
	reinstallCmd.Flags().IntVarP(&reinstallBatchSizeFlag, "batch-size", "b", engine.DefaultBatchSize, "Maximum packages per reinstall invocation")
}

// runReinstall executes the reinstall command.
//
// It performs the following operations:
//   - Step 1: Verifies Homebrew is available
//   - Step 2: Resolves the package list: with --all, queries installed
//     formulae (a query failure is fatal); otherwise requires an explicit
//     non-empty list
//   - Step 3: Partitions the packages into batches and reinstalls them in
//     parallel; a failing batch marks every one of its packages failed
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Packages to reinstall; ignored when --all is set
//
// Returns:
//   - error: Returns ExitError or PartialSuccessError on failure
func runReinstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd, reinstallJobsFlag, reinstallBatchSizeFlag)
	if err != nil {
		return err
	}

	if !reinstallAllFlag && len(args) == 0 {
		return errors.NewExitErrorf(errors.ExitUsageError, "no packages specified to reinstall; use --all to reinstall all packages")
	}

	if err := requireBrew(cfg); err != nil {
		return err
	}

	packages := args
	if reinstallAllFlag {
		fmt.Println("Reinstalling ALL installed packages...")
		packages, err = installedPackagesFunc(cmd.Context(), cfg.Brew)
		if err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
	}

	if len(packages) == 0 {
		fmt.Println("✓ No packages to reinstall")
		return nil
	}

	batches := engine.Partition(packages, cfg.BatchSize)
	fmt.Printf("Reinstalling %d package(s) in %d batch(es) with %d concurrent operations...\n", len(packages), len(batches), cfg.Jobs)

	res := runParallelPhase(cmd.Context(), cfg, engine.ReinstallAction, batches, len(packages))
	return finishParallel(engine.ReinstallAction, res)
}
