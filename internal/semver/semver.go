// Package semver provides the three-component version value used across
// the CLI: parsing of loosely-formatted version tokens, canonical
// formatting, and ordering.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"

	"github.com/reltag/cli/internal/errors"
)

// Version is an immutable (major, minor, patch) triple.
// All components are non-negative. The canonical string form is
// "major.minor.patch" with no "v" prefix and no suffix.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse normalizes a raw version token into a Version.
//
// Tokens may carry a leading "v" or "V" and arbitrary trailing text after
// each numeric component (git describe output like "v3.2.1-1-gabc123" is
// accepted). Each dot-separated part is truncated at its first non-digit
// character; a single-character part is kept as-is. The token must split
// into exactly three parts.
func Parse(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "v")
	trimmed = strings.TrimPrefix(trimmed, "V")

	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return Version{}, &errors.DetailError{
			Type:    "malformed version",
			Message: fmt.Sprintf("expected three dot-separated components, got %q", text),
			Hint:    "Versions must look like MAJOR.MINOR.PATCH, e.g. 1.4.2",
			Cause:   errors.ErrMalformedVersion,
		}
	}

	var components [3]int
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Version{}, &errors.DetailError{
				Type:    "malformed version",
				Message: fmt.Sprintf("component %d of %q is not numeric", i+1, text),
				Hint:    "Versions must look like MAJOR.MINOR.PATCH, e.g. 1.4.2",
				Cause:   errors.ErrMalformedVersion,
			}
		}
		components[i] = n
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// parseComponent converts one dot-separated part to a number, discarding
// everything from the first non-digit onward. A one-character part is
// trusted as a bare digit and passed to strconv unmodified.
func parseComponent(part string) (int, error) {
	if part == "" {
		return 0, fmt.Errorf("empty component")
	}

	digits := part
	if len(part) > 1 {
		end := len(part)
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				end = i
				break
			}
		}
		digits = part[:end]
	}

	if digits == "" {
		return 0, fmt.Errorf("no leading digits in %q", part)
	}

	return strconv.Atoi(digits)
}

// MustParse is like Parse but panics on failure. Intended for tests and
// package-level constants.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseStrict parses an explicitly supplied version argument (--force-version
// or a literal positional version). Unlike Parse it rejects tokens that are
// not exact canonical semver: no prerelease, no build metadata, no stray
// suffixes.
func ParseStrict(text string) (Version, error) {
	if !xsemver.IsValid("v"+text) || xsemver.Canonical("v"+text) != "v"+text {
		return Version{}, &errors.DetailError{
			Type:    "malformed version",
			Message: fmt.Sprintf("%q is not an exact MAJOR.MINOR.PATCH version", text),
			Hint:    "Forced versions must be given exactly, e.g. 2.0.0",
			Cause:   errors.ErrMalformedVersion,
		}
	}
	return Parse(text)
}

// String renders the canonical form "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag renders the git tag form with the conventional "v" prefix.
func (v Version) Tag() string {
	return "v" + v.String()
}

// Compare returns -1, 0, or +1 ordering a against b component-wise,
// major first.
func Compare(a, b Version) int {
	if c := compareInt(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareInt(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareInt(a.Patch, b.Patch)
}

// Less reports whether a orders strictly before b.
func Less(a, b Version) bool {
	return Compare(a, b) < 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
