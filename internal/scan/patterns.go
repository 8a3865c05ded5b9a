// Package scan locates embedded version strings in recognized file types
// and rewrites them. Recognition is driven by a declarative rule table:
// supporting a new ecosystem means adding one more entry, not new control
// flow.
package scan

import "regexp"

// Category is the detected file-type of a candidate file. It selects which
// pattern rules apply.
type Category string

// Known file-type categories.
const (
	CategoryErlangApp     Category = "erlang-app"
	CategoryElixirProject Category = "elixir-project"
	CategoryPythonModule  Category = "python-module"
	CategoryJSManifest    Category = "js-manifest"
	CategoryYAMLConfig    Category = "yaml-config"
)

// Rule locates a version token embedded in one known textual context.
// Capture group 1 is the raw version token; it is normalized through
// semver.Parse before being recorded, and matches that fail to normalize
// are dropped.
type Rule struct {
	// Name identifies the textual context for verbose output.
	Name string

	// Pattern is the compiled match expression. All rules are compiled
	// case-insensitive, multi-line, with "." matching newlines.
	Pattern *regexp.Regexp
}

// rules maps each category to its ordered rule list.
var rules = map[Category][]Rule{
	CategoryErlangApp: {
		{
			Name:    "app resource vsn tuple",
			Pattern: regexp.MustCompile(`(?ims)\{\s*vsn\s*,\s*"(v?[0-9][^"]*)"\s*\}`),
		},
	},
	CategoryElixirProject: {
		{
			Name:    "module @version attribute",
			Pattern: regexp.MustCompile(`(?ims)@version\s+"(v?[0-9][^"]*)"`),
		},
		{
			Name:    "project version key",
			Pattern: regexp.MustCompile(`(?ims)version:\s*"(v?[0-9][^"]*)"`),
		},
	},
	CategoryPythonModule: {
		{
			Name:    "version assignment",
			Pattern: regexp.MustCompile(`(?ims)version\s*[:=]\s*(?:\\\s*)?['"]?(v?[0-9][^'",\s)]*)['"]?`),
		},
	},
	CategoryJSManifest: {
		{
			Name:    "package manifest version field",
			Pattern: regexp.MustCompile(`(?ims)"version"\s*:\s*"(v?[0-9][^"]*)"\s*,\r?\n`),
		},
	},
	CategoryYAMLConfig: {
		{
			Name:    "version key",
			Pattern: regexp.MustCompile(`(?ims)^\s*version:\s*"?(v?[0-9][^"\s]*)"?`),
		},
		{
			Name:    "container image tag",
			Pattern: regexp.MustCompile(`(?ims)image:\s*\S+?:(v?[0-9][^\s"']*)`),
		},
	},
}

// classifier maps a path test to a category. Tests run in order; first
// match wins.
type classifier struct {
	category Category
	match    func(path string) bool
}

// Rules returns the ordered rule list for a category. Unknown categories
// return nil.
func Rules(c Category) []Rule {
	return rules[c]
}
