// Package engine implements the concurrent batch execution engine for pbrew:
// a concurrency limiter, work-item batching, and the parallel driver that
// runs work items through the external command gateway and aggregates
// per-item outcomes into a run result.
package engine

import "context"

// Limiter is a counting admission gate bounding how many gateway invocations
// may be in flight simultaneously.
//
// Admission order is not FIFO-fair but is starvation-free: the same fixed set
// of slots cycles through all waiters until every queued item has run.
//
// Fields:
//   - slots: Buffered channel whose capacity is the concurrency bound
type Limiter struct {
	slots chan struct{}
}

// NewLimiter creates a limiter admitting at most n concurrent operations.
//
// Parameters:
//   - n: Maximum concurrent admissions; values below 1 are treated as 1
//
// Returns:
//   - *Limiter: A new limiter with n free slots
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or the context is cancelled.
//
// Every successful Acquire must be paired with exactly one Release, normally
// via defer so the slot is returned on every exit path.
//
// Parameters:
//   - ctx: Context whose cancellation aborts the wait
//
// Returns:
//   - error: The context's error if cancelled while waiting, nil once admitted
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a previously acquired slot.
//
// Calling Release without a matching Acquire corrupts the limiter's
// accounting; pair every Acquire with exactly one Release.
func (l *Limiter) Release() {
	<-l.slots
}

// Bound returns the maximum number of concurrent admissions.
//
// Returns:
//   - int: The limiter's configured bound
func (l *Limiter) Bound() int {
	return cap(l.slots)
}
