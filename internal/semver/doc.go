// Package semver parses three-component versions and computes the next
// version for a major, minor or patch bump.
package semver
