package cmd

import (
	"context"

	"github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/git"
	"github.com/reltag/cli/internal/release"
	"github.com/reltag/cli/internal/scan"
)

// FileReport is the per-file detection detail for structured output.
type FileReport struct {
	Path     string   `json:"path" yaml:"path"`
	Category string   `json:"category" yaml:"category"`
	Versions []string `json:"versions" yaml:"versions"`
}

// DetectionReport is the full detection evidence for structured output.
type DetectionReport struct {
	Current      string       `json:"current,omitempty" yaml:"current,omitempty"`
	Origin       string       `json:"origin,omitempty" yaml:"origin,omitempty"`
	GitRecovered bool         `json:"gitRecovered,omitempty" yaml:"gitRecovered,omitempty"`
	Files        []FileReport `json:"files" yaml:"files"`
}

func buildFileReports(detections []scan.Detection) []FileReport {
	reports := make([]FileReport, len(detections))
	for i, d := range detections {
		versions := make([]string, len(d.Matches))
		for j, m := range d.Matches {
			versions[j] = m.Version.String()
		}
		reports[i] = FileReport{
			Path:     d.Path,
			Category: string(d.Category),
			Versions: versions,
		}
	}
	return reports
}

// scanRepository lists tracked files and scans them for version signals.
func scanRepository(ctx context.Context, dir string) ([]scan.Detection, *git.Binary, error) {
	g := git.NewBinary(dir)
	if !g.IsRepo(ctx) {
		return nil, nil, errors.NewPreconditionError(
			"the target directory is not inside a git working tree",
			nil,
			"Run reltag from a git repository, or pass --dir",
		)
	}

	tracked, err := g.LsFiles(ctx)
	if err != nil {
		return nil, nil, err
	}

	fs := release.OSFS{Root: dir}
	detections, err := scan.ScanAll(tracked, fs.ReadFile)
	if err != nil {
		return nil, nil, err
	}
	return detections, g, nil
}
