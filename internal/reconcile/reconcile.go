// Package reconcile collapses version signals from scanned files and from
// git tags into a single current version.
package reconcile

import (
	"github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/scan"
	"github.com/reltag/cli/internal/semver"
)

// GitOrigin marks a candidate derived from git describe rather than a file.
const GitOrigin = "git describe"

// Candidate is one version signal with the place it came from.
type Candidate struct {
	Version semver.Version
	Origin  string
}

// Result is the reconciled current version plus the evidence behind it.
type Result struct {
	// Current is the winning version.
	Current semver.Version

	// Origin names where the winning version came from: a file path,
	// GitOrigin, or empty for a bootstrapped 0.0.0.
	Origin string

	// Candidates lists every signal considered, in first-appearance order.
	Candidates []Candidate

	// GitRecovered is true when git describe failed but file versions
	// carried the run anyway.
	GitRecovered bool
}

// Options controls which signals participate.
type Options struct {
	// FromGit trusts git describe as the sole source; file detections are
	// ignored and a describe failure is fatal.
	FromGit bool

	// Bootstrap permits an empty candidate set, yielding 0.0.0. Set when
	// the caller forces an explicit version onto an unversioned project.
	Bootstrap bool
}

// Current reconciles file detections with the git-describe outcome.
//
// The tolerance is deliberately asymmetric: a git describe failure is
// recoverable as long as at least one file carries a version, but files
// yielding nothing while git also yields nothing is fatal. The highest
// version wins; on a tie the first-seen candidate keeps its origin. File
// candidates precede the git candidate, matching detection order.
func Current(detections []scan.Detection, gitVersion *semver.Version, gitErr error, opts Options) (Result, error) {
	var candidates []Candidate

	if !opts.FromGit {
		for _, d := range detections {
			for _, v := range d.Versions() {
				candidates = append(candidates, Candidate{Version: v, Origin: d.Path})
			}
		}
	}

	result := Result{Candidates: candidates}

	if opts.FromGit {
		if gitErr != nil {
			return Result{}, gitErr
		}
		if gitVersion == nil {
			return Result{}, errors.Wrap(errors.ErrNoVersionFound, "git describe produced no version")
		}
		c := Candidate{Version: *gitVersion, Origin: GitOrigin}
		result.Candidates = []Candidate{c}
		result.Current = c.Version
		result.Origin = c.Origin
		return result, nil
	}

	switch {
	case gitErr == nil && gitVersion != nil:
		result.Candidates = append(result.Candidates, Candidate{Version: *gitVersion, Origin: GitOrigin})
	case len(candidates) > 0:
		result.GitRecovered = gitErr != nil
	case opts.Bootstrap:
		result.Current = semver.Version{}
		return result, nil
	default:
		return Result{}, errors.Wrap(errors.ErrNoVersionFound, "no version in any candidate file and git describe produced nothing")
	}

	winner := result.Candidates[0]
	for _, c := range result.Candidates[1:] {
		if semver.Less(winner.Version, c.Version) {
			winner = c
		}
	}
	result.Current = winner.Version
	result.Origin = winner.Origin
	return result, nil
}
