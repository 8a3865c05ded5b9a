package scan

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/reltag/cli/internal/semver"
)

// classifiers is evaluated in order against each candidate path. A path
// matching none of the tests is not a candidate and is skipped entirely.
var classifiers = []classifier{
	{CategoryErlangApp, func(p string) bool {
		return strings.HasSuffix(p, ".app") || strings.HasSuffix(p, ".app.src")
	}},
	{CategoryElixirProject, func(p string) bool {
		return filepath.Base(p) == "mix.exs"
	}},
	{CategoryPythonModule, func(p string) bool {
		base := filepath.Base(p)
		if base == "setup.py" || base == "version.py" {
			return true
		}
		return strings.HasSuffix(base, ".py") && strings.Contains(base, "common")
	}},
	{CategoryJSManifest, func(p string) bool {
		return filepath.Base(p) == "package.json"
	}},
	{CategoryYAMLConfig, func(p string) bool {
		return strings.HasSuffix(p, ".yml") || strings.HasSuffix(p, ".yaml")
	}},
}

// Classify maps a path to its file-type category. The second return is
// false for paths outside the rule table.
func Classify(path string) (Category, bool) {
	for _, c := range classifiers {
		if c.match(path) {
			return c.category, true
		}
	}
	return "", false
}

// Match is one normalized version occurrence inside a file.
type Match struct {
	// Version is the normalized value.
	Version semver.Version

	// Rule names the textual context that matched.
	Rule string

	// Offset is the byte position of the raw token, used to report
	// occurrences in order of first appearance.
	Offset int

	// Raw is the token as it appeared in the file.
	Raw string
}

// Detection is the scan result for one candidate file.
type Detection struct {
	Path     string
	Category Category
	Matches  []Match
}

// Versions returns the normalized versions in first-appearance order.
func (d Detection) Versions() []semver.Version {
	out := make([]semver.Version, len(d.Matches))
	for i, m := range d.Matches {
		out[i] = m.Version
	}
	return out
}

// DistinctVersions returns the distinct normalized versions in
// first-appearance order.
func (d Detection) DistinctVersions() []semver.Version {
	seen := make(map[semver.Version]struct{}, len(d.Matches))
	var out []semver.Version
	for _, m := range d.Matches {
		if _, ok := seen[m.Version]; ok {
			continue
		}
		seen[m.Version] = struct{}{}
		out = append(out, m.Version)
	}
	return out
}

// ScanContent applies every rule of the file's category against the full
// content. Tokens that fail version normalization are silently dropped;
// that tolerates incidental look-alike substrings. The second return is
// false when the path is not a candidate or nothing matched.
func ScanContent(path string, content []byte) (Detection, bool) {
	category, ok := Classify(path)
	if !ok {
		return Detection{}, false
	}

	text := string(content)
	var matches []Match
	for _, rule := range Rules(category) {
		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			raw := text[loc[2]:loc[3]]
			v, err := semver.Parse(raw)
			if err != nil {
				continue
			}
			matches = append(matches, Match{
				Version: v,
				Rule:    rule.Name,
				Offset:  loc[2],
				Raw:     raw,
			})
		}
	}

	if len(matches) == 0 {
		return Detection{}, false
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Offset < matches[j].Offset
	})

	return Detection{Path: path, Category: category, Matches: matches}, true
}

// ScanAll scans every candidate among paths, reading content through read.
// Non-candidate paths are skipped; candidate files with no matches
// contribute no entry. The result preserves the order of paths.
func ScanAll(paths []string, read func(string) ([]byte, error)) ([]Detection, error) {
	var detections []Detection
	for _, path := range paths {
		if _, ok := Classify(path); !ok {
			continue
		}
		content, err := read(path)
		if err != nil {
			return nil, err
		}
		if d, ok := ScanContent(path, content); ok {
			detections = append(detections, d)
		}
	}
	return detections, nil
}
