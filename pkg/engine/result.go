package engine

// ItemResult is the outcome of a single work item.
//
// A batch is invoked once and reports only aggregate success or failure, so a
// failed batch marks every one of its names as failed, never a subset.
//
// Fields:
//   - Item: The work item this result belongs to
//   - OK: Whether the invocation exited with status zero
//   - Err: Launch or admission error, nil for a process that ran to completion
type ItemResult struct {
	Item Item
	OK   bool
	Err  error
}

// FailedNames returns the package names this result marks as failed.
//
// Returns:
//   - []string: Every name in the item when it failed, nil when it succeeded
func (r ItemResult) FailedNames() []string {
	if r.OK {
		return nil
	}
	return r.Item
}

// RunResult aggregates the outcomes of every work item in a parallel phase.
//
// Invariants: Succeeded and Failed are disjoint, their union covers every
// attempted package name, and Attempted equals the sum of item sizes — no
// item's outcome is lost or duplicated.
//
// Fields:
//   - Succeeded: Package names whose items exited successfully
//   - Failed: Package names whose items failed
//   - Attempted: Total package names across all work items
type RunResult struct {
	Succeeded []string
	Failed    []string
	Attempted int
}

// HasFailures reports whether any package failed.
//
// Returns:
//   - bool: true when the failed set is non-empty
func (r RunResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// Reduce folds per-item results into a RunResult.
//
// Membership in the succeeded and failed sets is independent of the order in
// which items completed; only the relative order of names within each set
// reflects completion order.
//
// Parameters:
//   - results: One result per scheduled work item
//
// Returns:
//   - RunResult: The aggregate over all items
func Reduce(results []ItemResult) RunResult {
	var agg RunResult
	for _, res := range results {
		agg.Attempted += len(res.Item)
		if res.OK {
			agg.Succeeded = append(agg.Succeeded, res.Item...)
		} else {
			agg.Failed = append(agg.Failed, res.Item...)
		}
	}
	return agg
}
