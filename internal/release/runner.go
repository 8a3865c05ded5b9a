package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/reconcile"
	"github.com/reltag/cli/internal/scan"
	"github.com/reltag/cli/internal/semver"
)

// Git is the subprocess surface the runner needs from a repository.
type Git interface {
	IsRepo(ctx context.Context) bool
	CurrentBranch(ctx context.Context) (string, error)
	Status(ctx context.Context) ([]string, error)
	LsFiles(ctx context.Context) ([]string, error)
	Describe(ctx context.Context) (semver.Version, error)
	Add(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
	TagAnnotated(ctx context.Context, name, message string) error
	Push(ctx context.Context) error
	PushTags(ctx context.Context) error
}

// FS reads and writes candidate files relative to the repository root.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFS is the real filesystem rooted at a directory. Paths from git
// ls-files are repository-relative, so reads and writes join the root.
type OSFS struct {
	Root string
}

func (f OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(f.Root, path))
}

func (f OSFS) WriteFile(path string, data []byte) error {
	info, err := os.Stat(filepath.Join(f.Root, path))
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(filepath.Join(f.Root, path), data, mode)
}

// Options configures one release run.
type Options struct {
	// Kind is the release-kind argument: major, minor, patch, or a
	// literal version.
	Kind string

	// ForceVersion overrides the computed next version. Mutually
	// exclusive with FromGit.
	ForceVersion string

	// FromGit trusts git describe as the sole current-version source.
	FromGit bool

	// DryRun computes and previews everything but mutates nothing.
	DryRun bool

	// LocalOnly commits and tags but never pushes.
	LocalOnly bool

	// SkipChecks disables every skippable precondition at once.
	SkipChecks bool

	SkipBranchCheck      bool
	SkipUncommittedCheck bool
	SkipUntrackedCheck   bool

	// Branch is the designated release branch.
	Branch string

	// TagMessagePrefix prefixes the annotated tag message, default
	// "release".
	TagMessagePrefix string
}

// Result reports what a run detected, computed, and changed.
type Result struct {
	Kind    Kind
	Current semver.Version
	Origin  string
	Next    semver.Version
	Tag     string

	// Detections is the per-file scan evidence.
	Detections []scan.Detection

	// Rewritten lists the files whose content changed (or would change,
	// on a dry run).
	Rewritten []scan.RewriteResult

	// GitRecovered is true when git describe failed but file versions
	// carried the run.
	GitRecovered bool

	DryRun    bool
	Committed bool
	Tagged    bool
	Pushed    bool
}

// Runner drives the release pipeline: detect, validate, compute, rewrite,
// commit, tag, push.
type Runner struct {
	Git  Git
	FS   FS
	Opts Options
}

// Run executes the pipeline. Precondition failures halt before any file or
// git mutation. Once rewriting has begun there is no rollback: a git
// failure afterwards returns an error alongside a Result that lists the
// files already rewritten on disk.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	kind, forced, err := r.resolveKind()
	if err != nil {
		return Result{}, err
	}

	if !r.Git.IsRepo(ctx) {
		return Result{}, errors.NewPreconditionError(
			"the target directory is not inside a git working tree",
			nil,
			"Run reltag from a git repository, or pass --dir",
		)
	}

	current, err := r.detect(ctx, forced != nil)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Kind:         kind,
		Current:      current.Current,
		Origin:       current.Origin,
		Detections:   current.Detections,
		GitRecovered: current.GitRecovered,
		DryRun:       r.Opts.DryRun,
	}

	if err := r.validate(ctx); err != nil {
		return result, err
	}

	next, err := Next(current.Current, kind, forced)
	if err != nil {
		return result, err
	}
	result.Next = next
	result.Tag = next.Tag()

	paths := detectionPaths(current.Detections)

	if r.Opts.DryRun {
		rewritten, err := scan.PreviewAll(paths, next, r.FS.ReadFile)
		if err != nil {
			return result, err
		}
		result.Rewritten = rewritten
		return result, nil
	}

	rewritten, err := scan.RewriteAll(paths, next, r.FS.ReadFile, r.FS.WriteFile)
	result.Rewritten = rewritten
	if err != nil {
		return result, err
	}

	if len(rewritten) > 0 {
		changed := make([]string, len(rewritten))
		for i, rw := range rewritten {
			changed[i] = rw.Path
		}
		if err := r.Git.Add(ctx, changed...); err != nil {
			return result, err
		}
		if err := r.Git.Commit(ctx, next.String()); err != nil {
			return result, err
		}
		result.Committed = true
	}

	message := fmt.Sprintf("%s %s", r.tagMessagePrefix(), next.String())
	if err := r.Git.TagAnnotated(ctx, result.Tag, message); err != nil {
		return result, err
	}
	result.Tagged = true

	if r.Opts.LocalOnly {
		return result, nil
	}

	if err := r.Git.Push(ctx); err != nil {
		return result, err
	}
	if err := r.Git.PushTags(ctx); err != nil {
		return result, err
	}
	result.Pushed = true
	return result, nil
}

// detection is the reconciled current version plus its scan evidence.
type detection struct {
	reconcile.Result
	Detections []scan.Detection
}

// detect scans tracked candidate files and git describe, then reconciles.
// With FromGit the file scan still runs so the result can report what the
// files say, but only the git signal decides the current version.
func (r *Runner) detect(ctx context.Context, bootstrap bool) (detection, error) {
	tracked, err := r.Git.LsFiles(ctx)
	if err != nil {
		return detection{}, err
	}

	detections, err := scan.ScanAll(tracked, r.FS.ReadFile)
	if err != nil {
		return detection{}, err
	}

	var gitVersion *semver.Version
	v, gitErr := r.Git.Describe(ctx)
	if gitErr == nil {
		gitVersion = &v
	}

	reconciled, err := reconcile.Current(detections, gitVersion, gitErr, reconcile.Options{
		FromGit:   r.Opts.FromGit,
		Bootstrap: bootstrap,
	})
	if err != nil {
		return detection{}, err
	}

	return detection{Result: reconciled, Detections: detections}, nil
}

// validate runs the skippable precondition checks against the live tree.
func (r *Runner) validate(ctx context.Context) error {
	if r.Opts.SkipChecks {
		return nil
	}

	if !r.Opts.SkipBranchCheck {
		branch, err := r.Git.CurrentBranch(ctx)
		if err != nil {
			return err
		}
		if branch != r.Opts.Branch {
			return errors.NewPreconditionError(
				fmt.Sprintf("releases are cut from %q but the checked-out branch is %q", r.Opts.Branch, branch),
				map[string]string{"branch": branch, "expected": r.Opts.Branch},
				"Check out the release branch, pass --branch, or use --skip-branch-check",
			)
		}
	}

	if r.Opts.SkipUncommittedCheck && r.Opts.SkipUntrackedCheck {
		return nil
	}

	status, err := r.Git.Status(ctx)
	if err != nil {
		return err
	}

	var uncommitted, untracked []string
	for _, line := range status {
		if strings.HasPrefix(line, "??") {
			untracked = append(untracked, strings.TrimSpace(line[2:]))
		} else {
			uncommitted = append(uncommitted, strings.TrimSpace(line[2:]))
		}
	}

	if !r.Opts.SkipUncommittedCheck && len(uncommitted) > 0 {
		return errors.NewPreconditionError(
			fmt.Sprintf("the working tree has %d uncommitted modification(s)", len(uncommitted)),
			map[string]string{"files": strings.Join(uncommitted, ", ")},
			"Commit or stash local changes, or use --skip-uncommitted-check",
		)
	}
	if !r.Opts.SkipUntrackedCheck && len(untracked) > 0 {
		return errors.NewPreconditionError(
			fmt.Sprintf("the working tree has %d untracked file(s)", len(untracked)),
			map[string]string{"files": strings.Join(untracked, ", ")},
			"Track, remove, or ignore them, or use --skip-untracked-check",
		)
	}
	return nil
}

// resolveKind merges the kind argument with --force-version. An explicit
// --force-version turns any named kind into a forced release; combining it
// with --from-git or a literal-version kind argument is rejected.
func (r *Runner) resolveKind() (Kind, *semver.Version, error) {
	kind, forced, err := ParseKind(r.Opts.Kind)
	if err != nil {
		return "", nil, err
	}

	if r.Opts.ForceVersion == "" {
		return kind, forced, nil
	}

	if r.Opts.FromGit {
		return "", nil, errors.NewPreconditionError(
			"--force-version and --from-git are mutually exclusive",
			nil,
			"Pick one source of truth for the version",
		)
	}
	if kind == KindForced {
		return "", nil, errors.NewPreconditionError(
			"an explicit version argument and --force-version cannot be combined",
			nil,
			"Pass the version once",
		)
	}

	v, err := semver.ParseStrict(r.Opts.ForceVersion)
	if err != nil {
		return "", nil, err
	}
	return KindForced, &v, nil
}

func (r *Runner) tagMessagePrefix() string {
	if r.Opts.TagMessagePrefix != "" {
		return r.Opts.TagMessagePrefix
	}
	return "release"
}

func detectionPaths(detections []scan.Detection) []string {
	paths := make([]string, len(detections))
	for i, d := range detections {
		paths[i] = d.Path
	}
	return paths
}
