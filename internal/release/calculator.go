// Package release computes next versions and orchestrates the release
// pipeline end to end.
package release

import (
	"fmt"
	"strings"

	"github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/semver"
)

// Kind is the requested release increment.
type Kind string

// Supported release kinds.
const (
	KindMajor  Kind = "major"
	KindMinor  Kind = "minor"
	KindPatch  Kind = "patch"
	KindForced Kind = "forced"
)

// ParseKind interprets a release-kind argument. Matching is
// case-insensitive. An argument that is not a named kind is tried as a
// literal version, which forces that exact version; anything else is
// ErrUnsupportedReleaseKind.
func ParseKind(arg string) (Kind, *semver.Version, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(arg))) {
	case KindMajor:
		return KindMajor, nil, nil
	case KindMinor:
		return KindMinor, nil, nil
	case KindPatch:
		return KindPatch, nil, nil
	}

	if v, err := semver.ParseStrict(arg); err == nil {
		return KindForced, &v, nil
	}

	return "", nil, errors.Wrap(errors.ErrUnsupportedReleaseKind,
		fmt.Sprintf("%q is not major, minor, patch, or an explicit version", arg))
}

// Next computes the version a release of the given kind produces. Forced
// releases return the forced version verbatim; the current version must
// still have parsed upstream, so a broken repository fails before any
// mutation regardless of kind.
func Next(current semver.Version, kind Kind, forced *semver.Version) (semver.Version, error) {
	switch kind {
	case KindMajor:
		return semver.Version{Major: current.Major + 1}, nil
	case KindMinor:
		return semver.Version{Major: current.Major, Minor: current.Minor + 1}, nil
	case KindPatch:
		return semver.Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch + 1}, nil
	case KindForced:
		if forced == nil {
			return semver.Version{}, errors.Wrap(errors.ErrUnsupportedReleaseKind, "forced release without a version")
		}
		return *forced, nil
	default:
		return semver.Version{}, errors.Wrap(errors.ErrUnsupportedReleaseKind, string(kind))
	}
}
