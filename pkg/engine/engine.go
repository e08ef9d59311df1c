package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ajxudir/pbrew/pkg/cmdexec"
	"github.com/ajxudir/pbrew/pkg/output"
	"github.com/ajxudir/pbrew/pkg/verbose"
)

// DefaultJobs is the concurrency bound used when no other value is
// configured. It caps concurrent Homebrew invocations to keep CPU and
// download contention manageable.
const DefaultJobs = 4

// Action describes how a verb is rendered in progress and result lines.
//
// Fields:
//   - Verb: The Homebrew verb passed on the command line (e.g., "install")
//   - Doing: Present-participle label for status messages (e.g., "Installing")
//   - Done: Past-tense label for success lines (e.g., "Installed")
type Action struct {
	Verb  string
	Doing string
	Done  string
}

// Predefined actions for the verbs pbrew runs in parallel.
var (
	FetchAction     = Action{Verb: "fetch", Doing: "Fetching", Done: "Fetched"}
	InstallAction   = Action{Verb: "install", Doing: "Installing", Done: "Installed"}
	ReinstallAction = Action{Verb: "reinstall", Doing: "Reinstalling", Done: "Reinstalled"}
)

// SpecFunc maps a work item to the command invocation that processes it.
type SpecFunc func(item Item) cmdexec.Spec

// Engine drives a collection of work items through the external command
// gateway under a concurrency limit and aggregates per-item outcomes.
//
// Fields:
//   - Jobs: Maximum concurrent gateway invocations
//   - Sink: Receiver for progress and result-line events
//   - Run: Gateway invocation function, swappable for tests
//   - Action: Verb labels for progress and result lines
type Engine struct {
	Jobs   int
	Sink   output.Sink
	Run    cmdexec.RunFunc
	Action Action
}

// New creates an engine with the default gateway.
//
// Parameters:
//   - jobs: Maximum concurrent invocations; values below 1 become 1
//   - sink: Receiver for progress events
//   - action: Verb labels for the phase
//
// Returns:
//   - *Engine: A ready-to-use engine backed by cmdexec.Run
func New(jobs int, sink output.Sink, action Action) *Engine {
	return &Engine{
		Jobs:   jobs,
		Sink:   sink,
		Run:    cmdexec.Run,
		Action: action,
	}
}

// Execute runs all work items concurrently and returns the aggregate result.
//
// It performs the following operations:
//   - Step 1: Schedules one goroutine per item; each acquires a limiter slot,
//     invokes the gateway, emits progress events, and releases the slot on
//     every exit path
//   - Step 2: Waits for every scheduled item to finish (full barrier); no
//     dependent phase may start before this returns
//   - Step 3: Reduces the collected item results into a RunResult
//
// An individual item's failure, including a launch failure, never aborts
// sibling items or the overall run; it is folded into the result's failed
// set. The relative completion order of items is nondeterministic, but set
// membership in the result is order-independent.
//
// Parameters:
//   - ctx: Context threaded through gateway invocations
//   - items: Ordered work items to process
//
// Returns:
//   - RunResult: Aggregate success/failure over all package names
func (e *Engine) Execute(ctx context.Context, items []Item) RunResult {
	return e.ExecuteSpec(ctx, items, e.verbSpec)
}

// ExecuteSpec runs all work items using a caller-provided spec builder.
//
// This is the fully injectable variant of Execute used when the invocation
// shape differs from the standard "verb followed by names" grammar.
//
// Parameters:
//   - ctx: Context threaded through gateway invocations
//   - items: Ordered work items to process
//   - spec: Builder mapping each item to its command invocation
//
// Returns:
//   - RunResult: Aggregate success/failure over all package names
func (e *Engine) ExecuteSpec(ctx context.Context, items []Item, spec SpecFunc) RunResult {
	if len(items) == 0 {
		return RunResult{}
	}

	limiter := NewLimiter(e.Jobs)
	results := make(chan ItemResult, len(items))
	wg := &sync.WaitGroup{}

	for _, item := range items {
		wg.Add(1)
		go func(it Item) {
			defer wg.Done()
			results <- e.runItem(ctx, limiter, it, spec(it))
		}(item)
	}

	// Full barrier: aggregation must not observe a partial result set.
	wg.Wait()
	close(results)

	collected := make([]ItemResult, 0, len(items))
	for res := range results {
		collected = append(collected, res)
	}

	return Reduce(collected)
}

// Brew is the default binary name the engine invokes; commands override it
// through the spec builder when the config names a different binary.
const Brew = "brew"

// verbSpec builds the standard invocation: the engine's verb followed by the
// item's package names in order.
func (e *Engine) verbSpec(item Item) cmdexec.Spec {
	args := make([]string, 0, len(item)+1)
	args = append(args, e.Action.Verb)
	args = append(args, item...)
	return cmdexec.Spec{Name: Brew, Args: args}
}

// runItem processes one work item: admission, invocation, event emission.
//
// The limiter slot is released on every exit path, including gateway launch
// failures, so a failing item can never leak a slot and stall siblings.
func (e *Engine) runItem(ctx context.Context, limiter *Limiter, item Item, spec cmdexec.Spec) ItemResult {
	if err := limiter.Acquire(ctx); err != nil {
		e.reportFailure(item, err.Error())
		return ItemResult{Item: item, Err: err}
	}
	defer limiter.Release()

	e.Sink.SetMessage(e.activeMessage(item))

	outcome, err := e.Run(ctx, spec)
	if err != nil {
		verbose.Printf("launch failed for %s: %v", spec.String(), err)
		e.reportFailure(item, err.Error())
		return ItemResult{Item: item, Err: err}
	}

	if !outcome.Success {
		e.reportFailure(item, strings.TrimSpace(string(outcome.Stderr)))
		return ItemResult{Item: item}
	}

	for _, name := range item {
		e.Sink.Println(fmt.Sprintf("✓ %s: %s", e.Action.Done, name))
	}
	e.Sink.Advance(len(item))
	return ItemResult{Item: item, OK: true}
}

// activeMessage builds the transient status message for an in-flight item.
func (e *Engine) activeMessage(item Item) string {
	if len(item) == 1 {
		return fmt.Sprintf("%s %s", e.Action.Doing, item[0])
	}
	return fmt.Sprintf("%s batch: %s", e.Action.Doing, strings.Join(item, ", "))
}

// reportFailure emits one failure line per affected package name plus the
// advance event for the whole item.
func (e *Engine) reportFailure(item Item, reason string) {
	for _, name := range item {
		e.Sink.Println(fmt.Sprintf("✗ Failed to %s: %s", e.Action.Verb, name))
	}
	if reason != "" {
		e.Sink.Println(fmt.Sprintf("  %s", firstLine(reason)))
	}
	e.Sink.Advance(len(item))
}

// firstLine trims a possibly multi-line error message down to its first line
// so failure output stays one line per cause.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
