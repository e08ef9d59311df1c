package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/brew"
	"github.com/ajxudir/pbrew/pkg/cmdexec"
	"github.com/ajxudir/pbrew/pkg/config"
	"github.com/ajxudir/pbrew/pkg/engine"
	"github.com/ajxudir/pbrew/pkg/errors"
	"github.com/ajxudir/pbrew/pkg/output"
	"github.com/ajxudir/pbrew/pkg/preflight"
)

// Seams for mocking collaborators in tests. Each variable holds the real
// implementation and is swapped out by the test suite.
var (
	checkBrewFunc         = preflight.CheckBrew
	outdatedPackagesFunc  = brew.Outdated
	installedPackagesFunc = brew.Installed
	newSinkFunc           = defaultSink
)

// defaultSink builds the interactive stderr progress indicator.
func defaultSink(total int, message string) output.Sink {
	return output.NewStderrProgress(total, message)
}

// loadRuntimeConfig loads the configuration and applies flag overrides.
//
// It performs the following operations:
//   - Step 1: Loads .pbrew.yml (or the --config path) from the working directory
//   - Step 2: Overrides jobs and batch size from flags when the caller set them
//   - Step 3: Re-validates the merged result
//
// Parameters:
//   - cmd: The cobra command whose flags may override file values
//   - jobs: Value of the --jobs flag
//   - batchSize: Value of the --batch-size flag
//
// Returns:
//   - *config.Config: The merged configuration
//   - error: ExitError with ExitUsageError on load or validation failure
func loadRuntimeConfig(cmd *cobra.Command, jobs, batchSize int) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag, ".")
	if err != nil {
		return nil, errors.NewExitError(errors.ExitUsageError, err)
	}

	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = batchSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewExitError(errors.ExitUsageError, err)
	}
	return cfg, nil
}

// requireBrew runs the availability probe and wraps a miss as a fatal error.
//
// Parameters:
//   - cfg: Configuration naming the binary to probe
//
// Returns:
//   - error: ExitError with ExitFailure when the binary is missing
func requireBrew(cfg *config.Config) error {
	if err := checkBrewFunc(cfg.Brew); err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}
	return nil
}

// runSerialPhase runs a single non-parallel invocation with streamed output.
//
// Used for the update and upgrade phases where Homebrew's own output should
// reach the terminal directly.
//
// Parameters:
//   - ctx: Context for cancellation
//   - spec: The invocation to run
//
// Returns:
//   - error: ExitError with ExitFailure on launch failure or non-zero exit
func runSerialPhase(ctx context.Context, spec cmdexec.Spec) error {
	fmt.Printf("Running: %s\n", spec.String())

	outcome, err := cmdexec.RunStreaming(ctx, spec)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}
	if !outcome.Success {
		return errors.NewExitErrorf(errors.ExitFailure, "command failed: %s (exit code %d)", spec.String(), outcome.ExitCode)
	}
	return nil
}

// runParallelPhase drives work items through the batch execution engine.
//
// The engine emits progress and per-package result lines through the sink;
// this helper finalizes the sink once the barrier is passed.
//
// Parameters:
//   - ctx: Context threaded through gateway invocations
//   - cfg: Configuration providing the concurrency bound and binary
//   - action: Verb labels for the phase
//   - items: Ordered work items to process
//   - total: Total package names, used to size the progress display
//
// Returns:
//   - engine.RunResult: Aggregate success/failure over all package names
func runParallelPhase(ctx context.Context, cfg *config.Config, action engine.Action, items []engine.Item, total int) engine.RunResult {
	sink := newSinkFunc(total, action.Doing+" packages")
	eng := engine.New(cfg.Jobs, sink, action)

	res := eng.ExecuteSpec(ctx, items, func(item engine.Item) cmdexec.Spec {
		return brew.Spec(cfg.Brew, action.Verb, item...)
	})

	sink.Done()
	return res
}

// finishParallel prints the final summary for install/reinstall phases and
// maps the aggregate result to the command's error.
//
// Any non-empty failed set is fatal for these commands: partial success exits
// with code 1, a run where nothing succeeded with code 2.
//
// Parameters:
//   - action: Verb labels for the phase
//   - res: Aggregate result from the engine
//
// Returns:
//   - error: nil on full success, PartialSuccessError or ExitError otherwise
func finishParallel(action engine.Action, res engine.RunResult) error {
	verb := strings.ToLower(action.Verb)

	if len(res.Succeeded) > 0 {
		fmt.Printf("✓ Successfully %s %d package(s)\n", strings.ToLower(action.Done), len(res.Succeeded))
	}

	if !res.HasFailures() {
		fmt.Printf("✓ %s complete\n", strings.ToUpper(verb[:1])+verb[1:])
		return nil
	}

	fmt.Fprintf(os.Stderr, "✗ %d package(s) failed to %s: %s\n", len(res.Failed), verb, strings.Join(res.Failed, ", "))

	if len(res.Succeeded) == 0 {
		return errors.NewExitErrorf(errors.ExitFailure, "all %d package(s) failed to %s", len(res.Failed), verb)
	}
	return errors.NewPartialSuccessError(len(res.Succeeded), res.Failed)
}
