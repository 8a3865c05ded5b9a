package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: file paths, versions, tags.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for added lines and successful steps.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified files and recoverable warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed lines.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Styles groups the semantic styles used by the renderers.
type Styles struct {
	Noun    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
}

// GetStyles returns the default colored styles.
func GetStyles() *Styles {
	return &Styles{
		Noun:    lipgloss.NewStyle().Foreground(ColorCyan),
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
	}
}

// NoColorStyles returns styles with all coloring disabled.
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Noun:    plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
		Bold:    plain,
		Dim:     plain,
	}
}

// IsNoColor reports whether color output is disabled via NO_COLOR.
func IsNoColor() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
