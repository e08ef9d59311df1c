package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pbrew/pkg/errors"
	"github.com/ajxudir/pbrew/pkg/testutil"
)

func TestReinstallNoPackagesWithoutAllIsUsageError(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubRecorderSink(t)

	err := executeCommand(t, "reinstall")

	require.Error(t, err)
	assert.Equal(t, errors.ExitUsageError, errors.GetExitCode(err))
	assert.Contains(t, err.Error(), "use --all to reinstall all packages")
	assert.Empty(t, gw.parallelCalls())
	assert.Empty(t, gw.serialCalls())
}

func TestReinstallExplicitPackages(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubRecorderSink(t)

	var err error
	stdout := testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "reinstall", "wget", "curl")
	})

	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Reinstall complete")

	calls := gw.parallelCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"reinstall", "wget", "curl"}, calls[0].Args)
}

func TestReinstallAllQueriesInstalledPackages(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubInstalled(t, []string{"wget", "curl", "jq"}, nil)
	stubRecorderSink(t)

	var err error
	stdout := testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "reinstall", "--all")
	})

	require.NoError(t, err)
	assert.Contains(t, stdout, "Reinstalling ALL installed packages...")
	assert.Contains(t, stdout, "Reinstalling 3 package(s)")
	assert.ElementsMatch(t, []string{"wget", "curl", "jq"}, namesFromSpecs(gw.parallelCalls()))
}

func TestReinstallAllIgnoresExplicitArgs(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubInstalled(t, []string{"jq"}, nil)
	stubRecorderSink(t)

	var err error
	testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "reinstall", "--all", "wget")
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"jq"}, namesFromSpecs(gw.parallelCalls()))
}

func TestReinstallAllQueryFailureIsFatal(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubInstalled(t, nil, assert.AnError)
	stubRecorderSink(t)

	var err error
	testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "reinstall", "--all")
	})

	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
	assert.Empty(t, gw.parallelCalls())
}

func TestReinstallAllNothingInstalled(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubInstalled(t, nil, nil)
	stubRecorderSink(t)

	var err error
	stdout := testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "reinstall", "--all")
	})

	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ No packages to reinstall")
	assert.Empty(t, gw.parallelCalls())
}
