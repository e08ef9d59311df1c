package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pbrew/pkg/brew"
	"github.com/ajxudir/pbrew/pkg/cmdexec"
	"github.com/ajxudir/pbrew/pkg/errors"
	"github.com/ajxudir/pbrew/pkg/testutil"
	"github.com/ajxudir/pbrew/pkg/warnings"
)

func TestUpgradeNothingOutdated(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubOutdated(t, nil, nil)
	stubRecorderSink(t)

	var err error
	stdout := testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "upgrade")
	})

	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ All packages are up to date")

	// Only the serial update ran; no fetch invocations were made.
	serial := gw.serialCalls()
	require.Len(t, serial, 1)
	assert.Equal(t, []string{"update"}, serial[0].Args)
	assert.Empty(t, gw.parallelCalls())
}

func TestUpgradeFetchesEachPackageThenUpgrades(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubOutdated(t, []brew.Package{
		{Name: "wget", InstalledVersions: []string{"1.24"}, CurrentVersion: "1.25"},
		{Name: "curl", InstalledVersions: []string{"8.5.0"}, CurrentVersion: "8.6.0"},
	}, nil)
	stubRecorderSink(t)

	var err error
	stdout := testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "upgrade")
	})

	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 outdated package(s): wget, curl")
	assert.Contains(t, stdout, "✓ Upgrade complete")

	// Each outdated package gets its own fetch invocation.
	parallel := gw.parallelCalls()
	require.Len(t, parallel, 2)
	for _, call := range parallel {
		assert.Equal(t, "fetch", call.Args[0])
		assert.Len(t, call.Args, 2)
	}
	assert.ElementsMatch(t, []string{"wget", "curl"}, namesFromSpecs(parallel))

	// Serial phases bracket the fetches: update first, upgrade last.
	serial := gw.serialCalls()
	require.Len(t, serial, 2)
	assert.Equal(t, []string{"update"}, serial[0].Args)
	assert.Equal(t, []string{"upgrade"}, serial[1].Args)
}

func TestUpgradeFetchFailuresAreWarnings(t *testing.T) {
	gw := stubGateway(t)
	gw.outcome = failSpecsContaining("wget")
	stubBrewFound(t)
	stubOutdated(t, []brew.Package{
		{Name: "wget", InstalledVersions: []string{"1.24"}, CurrentVersion: "1.25"},
		{Name: "curl", InstalledVersions: []string{"8.5.0"}, CurrentVersion: "8.6.0"},
	}, nil)
	stubRecorderSink(t)

	var warned bytes.Buffer
	restore := warnings.SetWarningWriter(&warned)
	t.Cleanup(restore)

	var err error
	stdout := testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "upgrade")
	})

	// A failed fetch does not fail the command: the serial upgrade step
	// downloads anything missing.
	require.NoError(t, err)
	assert.Contains(t, warned.String(), "Warning: 1 package(s) failed to fetch: wget")
	assert.Contains(t, stdout, "✓ Upgrade complete")

	serial := gw.serialCalls()
	require.Len(t, serial, 2)
	assert.Equal(t, []string{"upgrade"}, serial[1].Args)
}

func TestUpgradeUpdatePhaseFailureIsFatal(t *testing.T) {
	gw := stubGateway(t)
	gw.outcome = func(spec cmdexec.Spec) (cmdexec.Outcome, error) {
		if spec.Args[0] == "update" {
			return cmdexec.Outcome{ExitCode: 1}, nil
		}
		return cmdexec.Outcome{Success: true}, nil
	}
	stubBrewFound(t)
	stubOutdated(t, nil, nil)
	stubRecorderSink(t)

	var err error
	testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "upgrade")
	})

	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
	assert.Contains(t, err.Error(), "command failed")
	assert.Empty(t, gw.parallelCalls())
}

func TestUpgradeOutdatedQueryFailureIsFatal(t *testing.T) {
	gw := stubGateway(t)
	stubBrewFound(t)
	stubOutdated(t, nil, assert.AnError)
	stubRecorderSink(t)

	var err error
	testutil.CaptureStdout(t, func() {
		err = executeCommand(t, "upgrade")
	})

	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
	assert.Empty(t, gw.parallelCalls())
}
