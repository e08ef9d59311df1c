package outdated

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScope tests the behavior of Scope.
//
// It verifies:
//   - Major, minor, and patch jumps are classified correctly
//   - Homebrew revision and build suffixes are tolerated
//   - Unparsable versions classify as unknown
func TestScope(t *testing.T) {
	cases := []struct {
		name      string
		installed string
		current   string
		want      string
	}{
		{"major jump", "124.0", "125.0", ScopeMajor},
		{"minor jump", "1.21.3", "1.24.5", ScopeMinor},
		{"patch jump", "1.21.3", "1.21.4", ScopePatch},
		{"equal", "1.21.3", "1.21.3", ScopeNone},
		{"revision suffix", "1.21.3_1", "1.21.4", ScopePatch},
		{"build metadata", "124.0,build", "125.0,build", ScopeMajor},
		{"short versions", "124", "124.1", ScopeMinor},
		{"unparsable installed", "HEAD", "1.2.3", ScopeUnknown},
		{"unparsable current", "1.2.3", "stable", ScopeUnknown},
		{"both empty", "", "", ScopeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Scope(tc.installed, tc.current))
		})
	}
}

// TestInstalledVersion tests the behavior of InstalledVersion.
//
// It verifies:
//   - The last (newest) installed version is selected
//   - Empty input yields an empty string
func TestInstalledVersion(t *testing.T) {
	assert.Equal(t, "1.21.3", InstalledVersion([]string{"1.20.0", "1.21.3"}))
	assert.Equal(t, "2.0", InstalledVersion([]string{"2.0"}))
	assert.Equal(t, "", InstalledVersion(nil))
}
