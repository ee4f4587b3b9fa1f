// Package domain holds the version arithmetic and classification rules used
// when promoting a release tag into Helm chart metadata.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var semverPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// Version is a three-part semantic version together with the exact
// substring it was extracted from.
type Version struct {
	Major int
	Minor int
	Patch int
	Raw   string // matched substring, e.g. "1.2.3" out of "app-v1.2.3"
}

// ExtractVersion finds the first major.minor.patch pattern anywhere in s,
// so tags like "app-v1.2.3" or "v1.2.3+build" yield 1.2.3.
func ExtractVersion(s string) (Version, error) {
	m := semverPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, NewNoSemverError(s)
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, NewNoSemverError(s)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, NewNoSemverError(s)
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, NewNoSemverError(s)
	}
	return Version{Major: major, Minor: minor, Patch: patch, Raw: m[0]}, nil
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders two versions component by component. It returns -1 when
// v < other, 0 when equal, and 1 when v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	return compareInt(v.Patch, other.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Bump returns the next version for the given release type. Lower-order
// components reset to zero except for patch bumps, which only increment
// the last component.
func (v Version) Bump(t ReleaseType) (Version, error) {
	var next Version
	switch t {
	case ReleaseMajor:
		next = Version{Major: v.Major + 1}
	case ReleaseMinor:
		next = Version{Major: v.Major, Minor: v.Minor + 1}
	case ReleasePatch:
		next = Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return Version{}, NewUnsupportedReleaseTypeError(t)
	}
	next.Raw = next.String()
	return next, nil
}
