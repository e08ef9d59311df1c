// Package cmd implements the command-line interface for pbrew.
// It provides commands for updating Homebrew, upgrading outdated packages,
// and installing or reinstalling packages in parallel.
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/errors"
	"github.com/ajxudir/pbrew/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var configFlag string

var rootCmd = &cobra.Command{
	Use:   "pbrew",
	Short: "Parallel Homebrew package downloads and upgrades",
	Long:  `Run Homebrew package operations in parallel under a bounded concurrency limit.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersionOutput()
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success (including "nothing to do")
//   - 1: Partial failure (some packages succeeded, some failed)
//   - 2: Complete failure (brew missing, query failure, all packages failed)
//   - 3: Usage error (missing required arguments)
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)

		// Check for partial success
		var partialErr *errors.PartialSuccessError
		if stderrors.As(err, &partialErr) {
			code = errors.ExitPartialFailure
			verbose.Infof("Exit code %d: partial success - %d succeeded, %d failed", code, partialErr.Succeeded, len(partialErr.Failed))
		} else {
			verbose.Infof("Exit code %d: %v", code, err)
		}

		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file path (default: .pbrew.yml in the working directory)")

	// Add -v/--version as a LOCAL flag (not persistent) so it only works on root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// Commands ordered logically: info → workflow (update → outdated → upgrade → install → reinstall)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(outdatedCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(reinstallCmd)
}

// printVersionOutput prints version, build, and runtime information to stdout.
func printVersionOutput() {
	fmt.Printf("pbrew %s\n", Version)
	if GitCommit != "" {
		fmt.Printf("  Git:  %s\n", GitCommit)
	}
	if BuildTime != "" {
		fmt.Printf("  Date: %s\n", BuildTime)
	}
}
