// Package output provides progress reporting and structured result output
// for pbrew commands.
package output

import "sync"

// Sink receives progress events from a parallel phase.
//
// The batch execution engine emits one Advance per completed work item
// (sized to the number of package names the item covers), SetMessage for the
// currently running invocation, and one Println per affected package name as
// outcomes become known. Implementations must be safe for concurrent use.
type Sink interface {
	// Advance moves the progress forward by n completed package names.
	Advance(n int)

	// SetMessage replaces the transient status message (e.g., the batch
	// currently being installed).
	SetMessage(msg string)

	// Println prints a full line without corrupting the progress display.
	Println(line string)

	// Done marks the phase complete and finalizes the display.
	Done()
}

// Recorder is a Sink that records every event it receives.
//
// It is intended for tests and non-interactive runs where progress rendering
// would be noise but the emitted lines still matter. All methods are safe for
// concurrent use.
//
// Fields are accessed through methods; the zero value is ready to use.
type Recorder struct {
	mu       sync.Mutex
	advanced int
	messages []string
	lines    []string
	done     bool
}

// Advance records n completed package names.
//
// Parameters:
//   - n: Number of package names covered by the completed item
func (r *Recorder) Advance(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advanced += n
}

// SetMessage records a transient status message.
//
// Parameters:
//   - msg: The status message
func (r *Recorder) SetMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Println records a printed line.
//
// Parameters:
//   - line: The line content, without trailing newline
func (r *Recorder) Println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Done records completion of the phase.
func (r *Recorder) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = true
}

// Advanced returns the total advance count recorded so far.
//
// Returns:
//   - int: Sum of all Advance calls
func (r *Recorder) Advanced() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advanced
}

// Lines returns a copy of all recorded printed lines.
//
// Returns:
//   - []string: Lines in the order they were received
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Messages returns a copy of all recorded status messages.
//
// Returns:
//   - []string: Messages in the order they were received
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// IsDone reports whether Done has been called.
//
// Returns:
//   - bool: true once the phase was marked complete
func (r *Recorder) IsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}
