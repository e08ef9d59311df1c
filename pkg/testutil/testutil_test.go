package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCaptureStdout tests the behavior of CaptureStdout.
//
// It verifies:
//   - Output printed during fn is captured
//   - The original stdout is restored afterwards
func TestCaptureStdout(t *testing.T) {
	original := os.Stdout

	out := CaptureStdout(t, func() {
		fmt.Println("hello")
	})

	assert.Equal(t, "hello\n", out)
	assert.Equal(t, original, os.Stdout)
}

// TestCaptureOutput tests the behavior of CaptureOutput.
//
// It verifies:
//   - Stdout and stderr are captured independently
func TestCaptureOutput(t *testing.T) {
	stdout, stderr := CaptureOutput(t, func() {
		fmt.Fprintln(os.Stdout, "to stdout")
		fmt.Fprintln(os.Stderr, "to stderr")
	})

	assert.Equal(t, "to stdout\n", stdout)
	assert.Equal(t, "to stderr\n", stderr)
}
