package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/brew"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update Homebrew and fetch the latest package definitions",
	Long:  `Run a single 'brew update' to refresh Homebrew itself and its package definitions.`,
	RunE:  runUpdate,
}

// runUpdate executes the update command.
//
// It performs the following operations:
//   - Step 1: Verifies Homebrew is available
//   - Step 2: Runs a single non-parallel 'brew update' with streamed output
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd, 0, 0)
	if err != nil {
		return err
	}

	if err := requireBrew(cfg); err != nil {
		return err
	}

	if err := runSerialPhase(cmd.Context(), brew.Spec(cfg.Brew, "update")); err != nil {
		return err
	}

	fmt.Println("✓ Update complete")
	return nil
}
