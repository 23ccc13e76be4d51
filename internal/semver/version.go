package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion represents a semantic version (major.minor.patch-preRelease+build).
type SemVersion struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      string
}

// BumpKind selects which component of a version advances.
// The zero value bumps the patch component.
type BumpKind string

const (
	BumpPatch BumpKind = ""
	BumpMinor BumpKind = "minor"
	BumpMajor BumpKind = "major"
)

var (
	// versionRegex matches semantic version strings with optional "v" prefix,
	// optional pre-release (e.g., "-beta.1"), and optional build metadata (e.g., "+build.123").
	// It captures:
	//   1. Major version
	//   2. Minor version
	//   3. Patch version
	//   4. (optional) Pre-release identifier
	//   5. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^v?([^\.\-+]+)\.([^\.\-+]+)\.([^\.\-+]+)` + // major.minor.patch
			`(?:-([0-9A-Za-z\-\.]+))?` + // optional pre-release
			`(?:\+([0-9A-Za-z\-\.]+))?$`, // optional build metadata
	)

	// ErrInvalidVersion is returned when a version string does not conform
	// to the major.minor.patch format.
	ErrInvalidVersion = errors.New("invalid version format")

	// ErrInvalidBumpKind is returned for a bump kind other than major, minor or patch.
	ErrInvalidBumpKind = errors.New("invalid bump kind")
)

// String returns the string representation of the semantic version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 128

// ParseVersion parses a semantic version string and returns a SemVersion.
//
// Supported formats:
//   - "1.2.3" (basic version)
//   - "v1.2.3" (with optional v prefix)
//   - "1.2.3-alpha.1" (with pre-release identifier)
//   - "1.2.3+build.123" (with build metadata)
//
// Returns ErrInvalidVersion (wrapped) when the input is too long, does not
// have three components, or a component is not a non-negative integer.
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if len(matches) < 4 {
		return SemVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	parts := [3]int{}
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil || n < 0 {
			return SemVersion{}, fmt.Errorf("%w: invalid %s version %q", ErrInvalidVersion, name, matches[i+1])
		}
		parts[i] = n
	}

	return SemVersion{
		Major:      parts[0],
		Minor:      parts[1],
		Patch:      parts[2],
		PreRelease: matches[4],
		Build:      matches[5],
	}, nil
}

// ParseBumpKind converts a user supplied label into a BumpKind.
// An empty label and "patch" both mean a patch bump.
func ParseBumpKind(label string) (BumpKind, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	default:
		return BumpPatch, fmt.Errorf("%w: %q (valid options are: major, minor, patch)", ErrInvalidBumpKind, label)
	}
}

// String returns the label of the bump kind.
func (k BumpKind) String() string {
	if k == BumpPatch {
		return "patch"
	}
	return string(k)
}

// Bump returns the next version for the given kind:
//   - major: 1.2.3 -> 2.0.0
//   - minor: 1.2.3 -> 1.3.0
//   - patch: 1.2.3 -> 1.2.4
//
// Pre-release and build metadata are dropped.
func Bump(v SemVersion, kind BumpKind) SemVersion {
	switch kind {
	case BumpMajor:
		return SemVersion{Major: v.Major + 1}
	case BumpMinor:
		return SemVersion{Major: v.Major, Minor: v.Minor + 1}
	default:
		return SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// BumpString parses current, bumps it and returns the rendered result.
func BumpString(current string, kind BumpKind) (string, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	return Bump(v, kind).String(), nil
}
