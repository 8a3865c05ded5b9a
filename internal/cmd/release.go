package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reltag/cli/internal/config"
	"github.com/reltag/cli/internal/git"
	"github.com/reltag/cli/internal/output"
	"github.com/reltag/cli/internal/release"
)

type releaseFlags struct {
	dir                  string
	branch               string
	forceVersion         string
	fromGit              bool
	dryRun               bool
	local                bool
	skipChecks           bool
	skipBranchCheck      bool
	skipUncommittedCheck bool
	skipUntrackedCheck   bool
}

var relFlags releaseFlags

// NewReleaseCmd creates the release command.
func NewReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release <major|minor|patch|X.Y.Z>",
		Short: "Cut a release",
		Long: `Cut a release: detect the current version, compute the next
one, rewrite it into every version-bearing file, commit, create an
annotated tag, and push.

The argument picks the increment (major, minor, patch) or forces an exact
version (a literal X.Y.Z).

Preconditions checked before anything is touched: the checked-out branch
is the release branch, the working tree has no uncommitted modifications,
and there are no untracked files. Each check can be skipped individually.

Once file rewriting has begun there is no rollback: if a later git step
fails, the rewritten files stay on disk and are listed so the state is
never silent.

Examples:
  # Patch release from the release branch
  reltag release patch

  # See what a major release would change
  reltag release major --dry-run

  # Tag 2.0.0 exactly, without pushing
  reltag release 2.0.0 --local

  # Bootstrap an unversioned project
  reltag release patch --force-version 0.1.0`,
		Args: cobra.ExactArgs(1),
		RunE: runRelease,
	}

	cmd.Flags().StringVar(&relFlags.dir, "dir", ".", "Repository root")
	cmd.Flags().StringVar(&relFlags.branch, "branch", "", "Designated release branch (default from config)")
	cmd.Flags().StringVar(&relFlags.forceVersion, "force-version", "", "Force this exact next version")
	cmd.Flags().BoolVar(&relFlags.fromGit, "from-git", false, "Trust git describe as the sole current-version source")
	cmd.Flags().BoolVar(&relFlags.dryRun, "dry-run", false, "Compute and report without mutating anything")
	cmd.Flags().BoolVar(&relFlags.local, "local", false, "Commit and tag but do not push")
	cmd.Flags().BoolVar(&relFlags.skipChecks, "skip-checks", false, "Skip all precondition checks")
	cmd.Flags().BoolVar(&relFlags.skipBranchCheck, "skip-branch-check", false, "Skip the release-branch check")
	cmd.Flags().BoolVar(&relFlags.skipUncommittedCheck, "skip-uncommitted-check", false, "Skip the uncommitted-modifications check")
	cmd.Flags().BoolVar(&relFlags.skipUntrackedCheck, "skip-untracked-check", false, "Skip the untracked-files check")

	cmd.MarkFlagsMutuallyExclusive("force-version", "from-git")

	return cmd
}

func runRelease(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := GetConfig()

	branch := config.ResolveBranch(config.ResolveBranchOptions{
		FlagValue:   relFlags.branch,
		ConfigValue: cfg.Branch,
	})
	if verboseFlag {
		config.LogResolvedValues([]config.ResolvedValue{branch})
	}

	runner := &release.Runner{
		Git: git.NewBinary(relFlags.dir),
		FS:  release.OSFS{Root: relFlags.dir},
		Opts: release.Options{
			Kind:                 args[0],
			ForceVersion:         relFlags.forceVersion,
			FromGit:              relFlags.fromGit,
			DryRun:               relFlags.dryRun,
			LocalOnly:            relFlags.local || cfg.Local,
			SkipChecks:           relFlags.skipChecks,
			SkipBranchCheck:      relFlags.skipBranchCheck,
			SkipUncommittedCheck: relFlags.skipUncommittedCheck,
			SkipUntrackedCheck:   relFlags.skipUntrackedCheck,
			Branch:               branch.Value,
			TagMessagePrefix:     cfg.TagMessagePrefix,
		},
	}

	var result release.Result
	run := func() error {
		var err error
		result, err = runner.Run(ctx)
		return err
	}

	if relFlags.dryRun {
		if err := run(); err != nil {
			return err
		}
		printDryRun(result)
		return nil
	}

	if err := output.RunWithSpinner(ctx, run, output.WithTitle("Cutting release...")); err != nil {
		reportPartialState(result)
		return err
	}

	printRelease(result)
	return nil
}

func printDryRun(result release.Result) {
	output.Info("dry run",
		"current", result.Current.String(),
		"next", result.Next.String(),
		"tag", result.Tag,
	)
	output.Print(output.RenderChanges(fileChanges(result), styles()))
}

func printRelease(result release.Result) {
	if result.GitRecovered {
		output.Warn("git describe produced no version, used file versions only")
	}
	for _, rw := range result.Rewritten {
		output.Info("rewrote", "path", rw.Path)
	}
	if result.Pushed {
		output.Println(output.FormatCheckmark(fmt.Sprintf("released %s (tag %s), pushed", result.Next, result.Tag)))
		return
	}
	output.Println(output.FormatCheckmark(fmt.Sprintf("released %s (tag %s), not pushed", result.Next, result.Tag)))
}

// reportPartialState lists files already rewritten on disk when a git step
// failed after mutation began. There is no rollback.
func reportPartialState(result release.Result) {
	if len(result.Rewritten) == 0 {
		return
	}
	output.Warn("release failed after files were rewritten; no rollback is performed")
	for _, rw := range result.Rewritten {
		output.Warn("already rewritten on disk", "path", rw.Path)
	}
	if result.Committed {
		output.Warn("version commit was already created", "version", result.Next.String())
	}
	if result.Tagged {
		output.Warn("tag was already created", "tag", result.Tag)
	}
}

func fileChanges(result release.Result) []output.FileChange {
	changes := make([]output.FileChange, len(result.Rewritten))
	for i, rw := range result.Rewritten {
		changes[i] = output.FileChange{
			Path:   rw.Path,
			Before: rw.Before,
			After:  rw.After,
		}
	}
	return changes
}

func styles() *output.Styles {
	if output.IsNoColor() || !output.IsTTY() {
		return output.NoColorStyles()
	}
	return output.GetStyles()
}
