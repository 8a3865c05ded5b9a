package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// FileChange is one rewritten file for preview rendering.
type FileChange struct {
	Path   string
	Before []byte
	After  []byte
}

// RenderChanges renders the files a release rewrote (or would rewrite on a
// dry run), each with a content preview: a dyff report for YAML files, a
// plain changed-line listing for everything else.
func RenderChanges(changes []FileChange, styles *Styles) string {
	if len(changes) == 0 {
		return "No file changes.\n"
	}

	var sb strings.Builder
	sb.WriteString(styles.Warning.Render("Modified:"))
	sb.WriteString("\n")

	for _, c := range changes {
		sb.WriteString("  ~ ")
		sb.WriteString(styles.Noun.Render(c.Path))
		sb.WriteString("\n")

		preview, err := renderFilePreview(c)
		if err != nil {
			// The preview is advisory; a rendering failure must not
			// sink the run.
			Debug("change preview failed", "path", c.Path, "error", err)
			continue
		}
		for _, line := range strings.Split(preview, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary: ")
	sb.WriteString(fmt.Sprintf("%d file(s) modified\n", len(changes)))
	return sb.String()
}

func renderFilePreview(c FileChange) (string, error) {
	if isYAMLPath(c.Path) {
		return diffYAML(c.Path, c.Before, c.After)
	}
	return diffLines(c.Before, c.After), nil
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml")
}

// diffYAML computes a YAML-aware diff using dyff.
func diffYAML(path string, before, after []byte) (string, error) {
	beforeInput, err := parseYAMLInput(path+" (current)", before)
	if err != nil {
		return "", fmt.Errorf("parsing current YAML: %w", err)
	}

	afterInput, err := parseYAMLInput(path+" (next)", after)
	if err != nil {
		return "", fmt.Errorf("parsing rewritten YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(beforeInput, afterInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// diffLines lists removed and added lines for non-YAML content.
func diffLines(before, after []byte) string {
	beforeLines := strings.Split(string(before), "\n")
	afterLines := strings.Split(string(after), "\n")

	var sb strings.Builder
	for i := 0; i < len(beforeLines) || i < len(afterLines); i++ {
		var b, a string
		if i < len(beforeLines) {
			b = beforeLines[i]
		}
		if i < len(afterLines) {
			a = afterLines[i]
		}
		if b == a {
			continue
		}
		if b != "" || i < len(beforeLines) {
			sb.WriteString("- ")
			sb.WriteString(b)
			sb.WriteString("\n")
		}
		if a != "" || i < len(afterLines) {
			sb.WriteString("+ ")
			sb.WriteString(a)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
