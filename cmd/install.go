package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/engine"
	"github.com/ajxudir/pbrew/pkg/errors"
)

var (
	installJobsFlag      int
	installBatchSizeFlag int
)

var installCmd = &cobra.Command{
	Use:   "install <packages...>",
	Short: "Install packages in parallel",
	Long: `Install packages by partitioning them into batches and running the batch
installs concurrently under a bounded concurrency limit.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().IntVarP(&installJobsFlag, "jobs", "j", engine.DefaultJobs, "Maximum concurrent install operations")
	installCmd.Flags().IntVarP(&installBatchSizeFlag, "batch-size", "b", engine.DefaultBatchSize, "Maximum packages per install invocation")
}

// runInstall executes the install command.
//
// It performs the following operations:
//   - Step 1: Requires a non-empty explicit package list
//   - Step 2: Verifies Homebrew is available
//   - Step 3: Partitions the packages into batches and installs them in
//     parallel; a failing batch marks every one of its packages failed
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Packages to install; empty is a usage error
//
// Returns:
//   - error: Returns ExitError or PartialSuccessError on failure
func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd, installJobsFlag, installBatchSizeFlag)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return errors.NewExitErrorf(errors.ExitUsageError, "no packages specified to install")
	}

	if err := requireBrew(cfg); err != nil {
		return err
	}

	batches := engine.Partition(args, cfg.BatchSize)
	fmt.Printf("Installing %d package(s) in %d batch(es) with %d concurrent operations...\n", len(args), len(batches), cfg.Jobs)

	res := runParallelPhase(cmd.Context(), cfg, engine.InstallAction, batches, len(args))
	return finishParallel(engine.InstallAction, res)
}
