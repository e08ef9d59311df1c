package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ajxudir/pbrew/pkg/utils"
)

// maxMessageWidth bounds the transient status message so long batch
// descriptions do not wrap the progress line.
const maxMessageWidth = 60

// Progress provides an in-place progress indicator for parallel phases.
//
// It renders a single line of the form "message: current/total (pct%)" that
// is rewritten in place as items complete, and supports printing full lines
// above the indicator without corrupting it.
//
// Fields:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of package names in the phase
//   - current: Completed package name count
//   - message: Transient status message displayed with the progress
//   - mu: Mutex protecting concurrent access to progress state
//   - enabled: Whether progress output is enabled
//   - lastWidth: Width of the last rendered line for proper clearing
type Progress struct {
	writer    io.Writer
	total     int
	current   int
	message   string
	mu        sync.Mutex
	enabled   bool
	lastWidth int
}

var _ Sink = (*Progress)(nil)

// NewProgress creates a new progress indicator and returns it.
//
// Parameters:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of package names in the phase
//   - message: Initial status message (e.g., "Fetching packages")
//
// Returns:
//   - *Progress: A new progress indicator initialized and enabled
func NewProgress(writer io.Writer, total int, message string) *Progress {
	return &Progress{
		writer:  writer,
		total:   total,
		message: message,
		enabled: true,
	}
}

// NewStderrProgress creates a progress indicator that writes to stderr.
//
// This is the common case for interactive runs: progress goes to stderr so
// stdout stays clean for machine-readable output.
//
// Parameters:
//   - total: Total number of package names in the phase
//   - message: Initial status message
//
// Returns:
//   - *Progress: A new progress indicator writing to stderr
func NewStderrProgress(total int, message string) *Progress {
	return NewProgress(os.Stderr, total, message)
}

// SetEnabled enables or disables progress output.
//
// This is useful for suppressing progress in non-interactive environments
// or when structured output formats are used.
//
// Parameters:
//   - enabled: true to enable progress output; false to disable
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Advance moves the progress forward by n completed package names and
// re-renders the display.
//
// It performs the following operations:
//   - Step 1: Locks mutex, adds n to the counter, copies values, unlocks
//   - Step 2: Renders outside the critical section to prevent I/O deadlocks
//
// This method is safe to call concurrently from multiple goroutines.
//
// Parameters:
//   - n: Number of package names covered by the completed item
func (p *Progress) Advance(n int) {
	p.mu.Lock()
	p.current += n
	current := p.current
	total := p.total
	message := p.message
	enabled := p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(message, current, total)
	}
}

// SetMessage replaces the transient status message and re-renders.
//
// Long messages are truncated to keep the indicator on a single line.
//
// Parameters:
//   - msg: The new status message
func (p *Progress) SetMessage(msg string) {
	msg = utils.Truncate(msg, maxMessageWidth)

	p.mu.Lock()
	p.message = msg
	current := p.current
	total := p.total
	enabled := p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(msg, current, total)
	}
}

// Println prints a full line above the progress indicator.
//
// It performs the following operations:
//   - Step 1: Clears the in-place progress line
//   - Step 2: Writes the line followed by a newline
//   - Step 3: Re-renders the progress indicator below it
//
// Parameters:
//   - line: The line content, without trailing newline
func (p *Progress) Println(line string) {
	p.mu.Lock()
	enabled := p.enabled
	current := p.current
	total := p.total
	message := p.message
	lastWidth := p.lastWidth
	p.mu.Unlock()

	if !enabled {
		return
	}

	if lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", lastWidth))
	}
	_, _ = fmt.Fprintln(p.writer, line)

	if total > 0 {
		p.renderValues(message, current, total)
	}
}

// Done marks the progress as complete and prints a newline.
//
// It renders the final state one last time so the line shows the full count,
// then moves the cursor past the progress line.
func (p *Progress) Done() {
	p.mu.Lock()
	current := p.current
	total := p.total
	message := p.message
	enabled := p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(message, current, total)
		_, _ = fmt.Fprintln(p.writer)
	}
}

// renderValues renders progress with the given values.
//
// It performs the following operations:
//   - Step 1: Calculates the completion percentage
//   - Step 2: Formats the progress line with message and counts
//   - Step 3: Locks mutex briefly to update lastWidth and pad if needed
//   - Step 4: Writes to the output writer and flushes if it's a file
//
// Parameters:
//   - message: Status message to display
//   - current: Completed package name count
//   - total: Total number of package names
func (p *Progress) renderValues(message string, current, total int) {
	percentage := float64(current) / float64(total) * 100
	line := fmt.Sprintf("\r%s: %d/%d (%.0f%%)", message, current, total, percentage)

	// Lock only for lastWidth access to prevent display corruption
	p.mu.Lock()
	if len(line) < p.lastWidth {
		line += strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)
	p.mu.Unlock()

	_, _ = fmt.Fprint(p.writer, line)

	// Flush stderr to ensure progress renders immediately in CI environments
	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
}
