package cmd

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ajxudir/pbrew/pkg/brew"
	"github.com/ajxudir/pbrew/pkg/cmdexec"
	"github.com/ajxudir/pbrew/pkg/engine"
	"github.com/ajxudir/pbrew/pkg/output"
)

// gatewayRecorder records every gateway invocation a command makes and lets
// tests script per-spec outcomes.
type gatewayRecorder struct {
	mu       sync.Mutex
	parallel []cmdexec.Spec
	serial   []cmdexec.Spec

	// outcome scripts the result for a spec; nil means unconditional success.
	outcome func(spec cmdexec.Spec) (cmdexec.Outcome, error)
}

func (g *gatewayRecorder) record(specs *[]cmdexec.Spec, spec cmdexec.Spec) (cmdexec.Outcome, error) {
	g.mu.Lock()
	*specs = append(*specs, spec)
	g.mu.Unlock()

	if g.outcome != nil {
		return g.outcome(spec)
	}
	return cmdexec.Outcome{Success: true}, nil
}

func (g *gatewayRecorder) runParallel(ctx context.Context, spec cmdexec.Spec) (cmdexec.Outcome, error) {
	return g.record(&g.parallel, spec)
}

func (g *gatewayRecorder) runSerial(ctx context.Context, spec cmdexec.Spec) (cmdexec.Outcome, error) {
	return g.record(&g.serial, spec)
}

func (g *gatewayRecorder) parallelCalls() []cmdexec.Spec {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]cmdexec.Spec(nil), g.parallel...)
}

func (g *gatewayRecorder) serialCalls() []cmdexec.Spec {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]cmdexec.Spec(nil), g.serial...)
}

// failSpecsContaining scripts a gateway outcome that fails any invocation
// whose arguments include one of the given names.
func failSpecsContaining(names ...string) func(cmdexec.Spec) (cmdexec.Outcome, error) {
	return func(spec cmdexec.Spec) (cmdexec.Outcome, error) {
		for _, arg := range spec.Args {
			for _, name := range names {
				if arg == name {
					return cmdexec.Outcome{ExitCode: 1, Stderr: []byte("Error: " + name + " broke")}, nil
				}
			}
		}
		return cmdexec.Outcome{Success: true}, nil
	}
}

// stubGateway swaps both gateway functions for the duration of a test.
func stubGateway(t *testing.T) *gatewayRecorder {
	t.Helper()

	gw := &gatewayRecorder{}
	originalRun := cmdexec.Run
	originalStream := cmdexec.RunStreaming
	cmdexec.Run = gw.runParallel
	cmdexec.RunStreaming = gw.runSerial
	t.Cleanup(func() {
		cmdexec.Run = originalRun
		cmdexec.RunStreaming = originalStream
	})
	return gw
}

// stubBrewFound makes the availability probe succeed.
func stubBrewFound(t *testing.T) {
	t.Helper()
	original := checkBrewFunc
	checkBrewFunc = func(string) error { return nil }
	t.Cleanup(func() { checkBrewFunc = original })
}

// stubBrewMissing makes the availability probe fail with err.
func stubBrewMissing(t *testing.T, err error) {
	t.Helper()
	original := checkBrewFunc
	checkBrewFunc = func(string) error { return err }
	t.Cleanup(func() { checkBrewFunc = original })
}

// stubOutdated scripts the outdated query result.
func stubOutdated(t *testing.T, packages []brew.Package, err error) {
	t.Helper()
	original := outdatedPackagesFunc
	outdatedPackagesFunc = func(context.Context, string) ([]brew.Package, error) {
		return packages, err
	}
	t.Cleanup(func() { outdatedPackagesFunc = original })
}

// stubInstalled scripts the installed-list query result.
func stubInstalled(t *testing.T, names []string, err error) {
	t.Helper()
	original := installedPackagesFunc
	installedPackagesFunc = func(context.Context, string) ([]string, error) {
		return names, err
	}
	t.Cleanup(func() { installedPackagesFunc = original })
}

// stubRecorderSink routes engine progress into an output.Recorder instead of
// the interactive stderr indicator.
func stubRecorderSink(t *testing.T) *output.Recorder {
	t.Helper()

	rec := &output.Recorder{}
	original := newSinkFunc
	newSinkFunc = func(int, string) output.Sink { return rec }
	t.Cleanup(func() { newSinkFunc = original })
	return rec
}

// executeCommand resets shared flag state and runs the root command with the
// given arguments, returning the command error.
func executeCommand(t *testing.T, args ...string) error {
	t.Helper()

	verboseFlag = false
	versionFlag = false
	configFlag = ""
	outdatedOutputFlag = ""
	reinstallAllFlag = false
	upgradeJobsFlag = engine.DefaultJobs
	installJobsFlag = engine.DefaultJobs
	installBatchSizeFlag = engine.DefaultBatchSize
	reinstallJobsFlag = engine.DefaultJobs
	reinstallBatchSizeFlag = engine.DefaultBatchSize

	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return ExecuteTest()
}

// namesFromSpecs flattens the package names (everything after the verb) from
// the recorded invocations.
func namesFromSpecs(specs []cmdexec.Spec) []string {
	var names []string
	for _, spec := range specs {
		if len(spec.Args) > 1 {
			names = append(names, spec.Args[1:]...)
		}
	}
	return names
}

// joinedLines is a convenience for asserting on recorder output.
func joinedLines(rec *output.Recorder) string {
	return strings.Join(rec.Lines(), "\n")
}
