package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reltag/cli/internal/output"
)

var scanDir string

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List detected versions per file",
		Long: `Scan every tracked candidate file and list the versions
embedded in it, in order of appearance.

Examples:
  # Human-readable listing
  reltag scan

  # Machine-readable report
  reltag scan -o json`,
		RunE: runScan,
	}

	cmd.Flags().StringVar(&scanDir, "dir", ".", "Repository root")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	detections, _, err := scanRepository(cmd.Context(), scanDir)
	if err != nil {
		return err
	}

	format := GetOutputFormat()
	if format != output.FormatText {
		report := DetectionReport{Files: buildFileReports(detections)}
		rendered, err := output.Marshal(report, format)
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		output.Print(string(rendered))
		return nil
	}

	if len(detections) == 0 {
		output.Println("No versions detected.")
		return nil
	}

	styles := output.GetStyles()
	if output.IsNoColor() {
		styles = output.NoColorStyles()
	}

	for _, d := range detections {
		versions := make([]string, len(d.Matches))
		for i, m := range d.Matches {
			versions[i] = m.Version.String()
		}
		output.Println(fmt.Sprintf("%s  %s",
			styles.Noun.Render(d.Path),
			strings.Join(versions, ", "),
		))
		if verboseFlag {
			for _, m := range d.Matches {
				output.Debug("match", "path", d.Path, "rule", m.Rule, "raw", m.Raw, "offset", m.Offset)
			}
		}
	}
	return nil
}
