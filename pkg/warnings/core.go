// Package warnings routes non-fatal warning output through a swappable writer
// so commands and tests can capture or redirect it.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
)

// Warnf writes formatted warning messages to the configured warning writer.
//
// It performs the following operations:
//   - Acquires a read lock to safely access the warning writer
//   - Formats the message using the provided format string and arguments
//   - Writes the formatted message to the configured writer
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	w := warnWriter
	mu.RUnlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// WarningWriter returns the currently configured warning writer.
//
// Returns:
//   - io.Writer: The currently configured writer for warning messages
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter replaces the warning writer and returns a restore function.
//
// The returned function restores the previous writer when called, making it
// convenient to capture warnings for the duration of a test or command:
//
//	restore := warnings.SetWarningWriter(&buf)
//	defer restore()
//
// Parameters:
//   - w: The io.Writer to route warnings to; nil leaves the writer unchanged
//
// Returns:
//   - func(): Restore function that reinstates the previous writer
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w != nil {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
