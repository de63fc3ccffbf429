// Package version wraps semantic-version parsing and range matching for
// Electron release tags.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a parsed semantic version.
type Version = semver.Version

// Parse parses a release tag into a Version, stripping a single leading "v".
// Tags in the Electron catalog always carry the prefix; plain versions are
// accepted too so CLI input can omit it.
func Parse(tag string) (*Version, error) {
	raw := strings.TrimPrefix(tag, "v")
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("version %q must be in the form vX.Y.Z or X.Y.Z: %w", tag, err)
	}
	return v, nil
}

// Range is a semantic-version constraint expression such as "^13.0.0" or "*".
// The zero value is the unconstrained wildcard.
type Range struct {
	raw        string
	constraint *semver.Constraints
}

// ParseRange parses a constraint expression. Empty input and "*" both yield
// the unconstrained wildcard.
func ParseRange(expr string) (Range, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "*" {
		return Range{}, nil
	}
	c, err := semver.NewConstraint(trimmed)
	if err != nil {
		return Range{}, fmt.Errorf("invalid version range %q: %w", expr, err)
	}
	return Range{raw: trimmed, constraint: c}, nil
}

// MustRange parses expr and panics on failure. For tests and constants.
func MustRange(expr string) Range {
	r, err := ParseRange(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// Any reports whether the range is the unconstrained wildcard.
func (r Range) Any() bool {
	return r.constraint == nil
}

func (r Range) String() string {
	if r.Any() {
		return "*"
	}
	return r.raw
}

// Satisfies reports whether v matches the range under the prerelease rule:
// prerelease versions never match unless includePrerelease is set, in which
// case they are compared by their release core so ranges written without
// prerelease tags still admit tagged builds.
func (r Range) Satisfies(v *Version, includePrerelease bool) bool {
	if v == nil {
		return false
	}
	if v.Prerelease() != "" {
		if !includePrerelease {
			return false
		}
		core, err := v.SetPrerelease("")
		if err != nil {
			return false
		}
		v = &core
	}
	if r.Any() {
		return true
	}
	return r.constraint.Check(v)
}
