package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reltag/cli/internal/output"
	"github.com/reltag/cli/internal/reconcile"
	"github.com/reltag/cli/internal/semver"
)

var currentDir string
var currentFromGit bool

// NewCurrentCmd creates the current command.
func NewCurrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the current version",
		Long: `Print the reconciled current version of the repository.

The current version is the highest version found across recognized
version-bearing files and the latest git tag. Use --output yaml or
--output json for the full detection evidence.

Examples:
  # Print the current version
  reltag current

  # Full detection report
  reltag current -o yaml

  # Trust git describe only
  reltag current --from-git`,
		RunE: runCurrent,
	}

	cmd.Flags().StringVar(&currentDir, "dir", ".", "Repository root")
	cmd.Flags().BoolVar(&currentFromGit, "from-git", false, "Trust git describe as the sole version source")

	return cmd
}

func runCurrent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	detections, g, err := scanRepository(ctx, currentDir)
	if err != nil {
		return err
	}

	var gitVersion *semver.Version
	v, gitErr := g.Describe(ctx)
	if gitErr == nil {
		gitVersion = &v
	}

	result, err := reconcile.Current(detections, gitVersion, gitErr, reconcile.Options{
		FromGit: currentFromGit,
	})
	if err != nil {
		return err
	}

	if result.GitRecovered {
		output.Warn("git describe produced no version, using file versions only")
	}

	format := GetOutputFormat()
	if format == output.FormatText {
		output.Println(result.Current.String())
		if verboseFlag {
			output.Debug("current version resolved",
				"origin", result.Origin,
				"candidates", len(result.Candidates),
			)
		}
		return nil
	}

	report := DetectionReport{
		Current:      result.Current.String(),
		Origin:       result.Origin,
		GitRecovered: result.GitRecovered,
		Files:        buildFileReports(detections),
	}
	rendered, err := output.Marshal(report, format)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	output.Print(string(rendered))
	return nil
}
