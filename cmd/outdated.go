package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pbrew/pkg/brew"
	"github.com/ajxudir/pbrew/pkg/display"
	"github.com/ajxudir/pbrew/pkg/errors"
	"github.com/ajxudir/pbrew/pkg/outdated"
	"github.com/ajxudir/pbrew/pkg/output"
)

var outdatedOutputFlag string

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "List outdated packages with their update scope",
	Long: `Query Homebrew for outdated packages and list each with its installed
version, the newest available version, and the update scope (major, minor,
patch) derived from the two.`,
	RunE: runOutdatedCmd,
}

func init() {
	outdatedCmd.Flags().StringVarP(&outdatedOutputFlag, "output", "o", "", "Output format: json (default: table)")
}

// runOutdatedCmd executes the outdated command.
//
// It performs the following operations:
//   - Step 1: Verifies Homebrew is available
//   - Step 2: Queries outdated packages (parse failures are fatal)
//   - Step 3: Classifies each package's update scope and renders the result
//     as a table or as JSON with stable key order
//
// Listing outdated packages is informational: the command exits zero even
// when packages are outdated.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runOutdatedCmd(cmd *cobra.Command, args []string) error {
	if outdatedOutputFlag != "" && outdatedOutputFlag != "json" {
		return errors.NewExitErrorf(errors.ExitUsageError, "unsupported output format: %s", outdatedOutputFlag)
	}

	cfg, err := loadRuntimeConfig(cmd, 0, 0)
	if err != nil {
		return err
	}

	if err := requireBrew(cfg); err != nil {
		return err
	}

	packages, err := outdatedPackagesFunc(cmd.Context(), cfg.Brew)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	rows := outdatedRows(packages)

	if outdatedOutputFlag == "json" {
		return output.WriteOutdatedJSON(os.Stdout, rows)
	}

	if len(rows) == 0 {
		fmt.Println("✓ All packages are up to date")
		return nil
	}

	return display.RenderOutdated(os.Stdout, rows)
}

// outdatedRows converts query results into display rows, classifying each
// package's update scope from its installed and current versions.
func outdatedRows(packages []brew.Package) []output.OutdatedRow {
	rows := make([]output.OutdatedRow, 0, len(packages))
	for _, pkg := range packages {
		installed := outdated.InstalledVersion(pkg.InstalledVersions)
		rows = append(rows, output.OutdatedRow{
			Name:      pkg.Name,
			Installed: installed,
			Current:   pkg.CurrentVersion,
			Scope:     outdated.Scope(installed, pkg.CurrentVersion),
		})
	}
	return rows
}
