// Package outdated classifies the update scope of outdated packages by
// comparing installed and current versions.
package outdated

import (
	"fmt"
	"regexp"

	"golang.org/x/mod/semver"
)

// Update scope classifications.
const (
	// ScopeMajor indicates the major version number changes.
	ScopeMajor = "major"

	// ScopeMinor indicates only the minor version number changes.
	ScopeMinor = "minor"

	// ScopePatch indicates only the patch version number changes.
	ScopePatch = "patch"

	// ScopeNone indicates the versions are numerically equal.
	ScopeNone = "none"

	// ScopeUnknown indicates one of the versions could not be parsed.
	ScopeUnknown = "unknown"
)

// versionRegex extracts up to three leading numeric components. Homebrew
// versions often carry revision or build suffixes ("1.21.3_1", "124.0,build")
// that plain semver parsing rejects.
var versionRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Scope classifies the jump from an installed version to the current version.
//
// It performs the following operations:
//   - Step 1: Canonicalizes both versions into semver form, tolerating
//     Homebrew revision and build suffixes
//   - Step 2: Compares major, then major.minor, then full precision
//
// Parameters:
//   - installed: The installed version string
//   - current: The newest available version string
//
// Returns:
//   - string: One of ScopeMajor, ScopeMinor, ScopePatch, ScopeNone, or
//     ScopeUnknown when either version cannot be parsed
func Scope(installed, current string) string {
	iv, okInstalled := canonical(installed)
	cv, okCurrent := canonical(current)
	if !okInstalled || !okCurrent {
		return ScopeUnknown
	}

	if semver.Major(iv) != semver.Major(cv) {
		return ScopeMajor
	}
	if semver.MajorMinor(iv) != semver.MajorMinor(cv) {
		return ScopeMinor
	}
	if semver.Compare(iv, cv) != 0 {
		return ScopePatch
	}
	return ScopeNone
}

// InstalledVersion picks the newest installed version from an outdated entry.
//
// Homebrew reports installed versions oldest first, so the last entry is the
// newest one on disk.
//
// Parameters:
//   - versions: Installed versions as reported by the outdated query
//
// Returns:
//   - string: The last version, or empty when none are reported
func InstalledVersion(versions []string) string {
	if len(versions) == 0 {
		return ""
	}
	return versions[len(versions)-1]
}

// canonical converts a raw version string into canonical semver form.
//
// Missing minor or patch components default to zero, so "124" compares
// as "124.0.0".
func canonical(raw string) (string, bool) {
	match := versionRegex.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}

	minor, patch := match[2], match[3]
	if minor == "" {
		minor = "0"
	}
	if patch == "" {
		patch = "0"
	}

	v := fmt.Sprintf("v%s.%s.%s", match[1], minor, patch)
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}
