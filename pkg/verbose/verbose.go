// Package verbose provides debug logging for pbrew commands.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to true
//   - Releases the write lock
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to false
//   - Releases the write lock
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
//
// Returns:
//   - io.Writer: The currently configured output writer
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
//
// Parameters:
//   - msg: The message string to print
func Info(msg string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	Printf(format, args...)
}

// CommandStarted logs the start of an external command invocation.
//
// It joins the binary name and argument vector into a single line so the
// exact invocation can be reproduced from a verbose log.
//
// Parameters:
//   - name: The binary being invoked
//   - args: The argument vector passed to the binary
func CommandStarted(name string, args []string) {
	if IsEnabled() {
		Printf("exec: %s %s", name, strings.Join(args, " "))
	}
}

// CommandFinished logs the completion of an external command invocation.
//
// Parameters:
//   - name: The binary that was invoked
//   - success: Whether the process exited with status zero
func CommandFinished(name string, success bool) {
	if IsEnabled() {
		status := "ok"
		if !success {
			status = "failed"
		}
		Printf("exec done: %s (%s)", name, status)
	}
}
