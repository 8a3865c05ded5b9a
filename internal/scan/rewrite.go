package scan

import (
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/reltag/cli/internal/semver"
)

// Rewrite re-detects every version in content and substitutes each distinct
// old version string with the canonical form of next, everywhere in the
// file. The substitution is a blunt global replace, not pattern-scoped: an
// unrelated occurrence of the same digit sequence elsewhere in the file is
// rewritten too. That imprecision is accepted behavior, not a bug to fix
// silently.
//
// Detection runs fresh against the supplied content rather than reusing an
// earlier scan, so edits made between scanning and rewriting are tolerated.
// The changed return is false when nothing was detected or the substituted
// content is byte-identical.
func Rewrite(path string, content []byte, next semver.Version) (out []byte, changed bool) {
	detection, ok := ScanContent(path, content)
	if !ok {
		return content, false
	}

	text := string(content)
	for _, old := range detection.DistinctVersions() {
		text = strings.ReplaceAll(text, old.String(), next.String())
	}

	out = []byte(text)
	if xxh3.Hash(out) == xxh3.Hash(content) {
		return content, false
	}
	return out, true
}

// RewriteResult reports one file actually modified by RewriteAll.
type RewriteResult struct {
	Path string

	// Old holds the distinct versions that were replaced, in
	// first-appearance order.
	Old []semver.Version

	// Before and After hold the file content around the substitution,
	// for change previews.
	Before []byte
	After  []byte
}

// RewriteAll rewrites every candidate among paths, reading and writing
// content through the supplied callbacks, and returns the files whose
// content actually changed. Files with no detected versions, and files
// already carrying only the new version, are left untouched and excluded.
func RewriteAll(paths []string, next semver.Version, read func(string) ([]byte, error), write func(string, []byte) error) ([]RewriteResult, error) {
	return applyAll(paths, next, read, write)
}

// PreviewAll computes the rewrites RewriteAll would perform without writing
// anything. Used by dry-run mode.
func PreviewAll(paths []string, next semver.Version, read func(string) ([]byte, error)) ([]RewriteResult, error) {
	return applyAll(paths, next, read, nil)
}

func applyAll(paths []string, next semver.Version, read func(string) ([]byte, error), write func(string, []byte) error) ([]RewriteResult, error) {
	var modified []RewriteResult
	for _, path := range paths {
		if _, ok := Classify(path); !ok {
			continue
		}
		content, err := read(path)
		if err != nil {
			return nil, err
		}

		detection, ok := ScanContent(path, content)
		if !ok {
			continue
		}

		out, changed := Rewrite(path, content, next)
		if !changed {
			continue
		}

		if write != nil {
			if err := write(path, out); err != nil {
				return modified, err
			}
		}
		modified = append(modified, RewriteResult{
			Path:   path,
			Old:    detection.DistinctVersions(),
			Before: content,
			After:  out,
		})
	}
	return modified, nil
}
