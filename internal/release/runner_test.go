package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/semver"
)

// fakeGit scripts the repository state and records every mutation.
type fakeGit struct {
	repo        bool
	branch      string
	status      []string
	files       []string
	describe    semver.Version
	describeErr error

	added     []string
	commits   []string
	tags      [][2]string
	pushed    bool
	tagPushed bool

	commitErr error
	tagErr    error
	pushErr   error
}

func (g *fakeGit) IsRepo(context.Context) bool                  { return g.repo }
func (g *fakeGit) CurrentBranch(context.Context) (string, error) { return g.branch, nil }
func (g *fakeGit) Status(context.Context) ([]string, error)      { return g.status, nil }
func (g *fakeGit) LsFiles(context.Context) ([]string, error)     { return g.files, nil }

func (g *fakeGit) Describe(context.Context) (semver.Version, error) {
	return g.describe, g.describeErr
}

func (g *fakeGit) Add(_ context.Context, paths ...string) error {
	g.added = append(g.added, paths...)
	return nil
}

func (g *fakeGit) Commit(_ context.Context, message string) error {
	if g.commitErr != nil {
		return g.commitErr
	}
	g.commits = append(g.commits, message)
	return nil
}

func (g *fakeGit) TagAnnotated(_ context.Context, name, message string) error {
	if g.tagErr != nil {
		return g.tagErr
	}
	g.tags = append(g.tags, [2]string{name, message})
	return nil
}

func (g *fakeGit) Push(context.Context) error {
	if g.pushErr != nil {
		return g.pushErr
	}
	g.pushed = true
	return nil
}

func (g *fakeGit) PushTags(context.Context) error {
	g.tagPushed = true
	return nil
}

// mapFS is an in-memory FS keyed by repository-relative path.
type mapFS map[string]string

func (m mapFS) ReadFile(path string) ([]byte, error) { return []byte(m[path]), nil }

func (m mapFS) WriteFile(path string, data []byte) error {
	m[path] = string(data)
	return nil
}

func cleanRepo() *fakeGit {
	return &fakeGit{
		repo:     true,
		branch:   "master",
		files:    []string{"README.md", "package.json", "deploy.yml"},
		describe: semver.Version{Major: 1, Minor: 3, Patch: 2},
	}
}

func repoFiles() mapFS {
	return mapFS{
		"README.md":    "hello\n",
		"package.json": "{\n  \"version\": \"1.3.2\",\n}\n",
		"deploy.yml":   "version: 1.3.2\nimage: web:1.3.2\n",
	}
}

func runner(git *fakeGit, fs mapFS, opts Options) *Runner {
	if opts.Branch == "" {
		opts.Branch = "master"
	}
	return &Runner{Git: git, FS: fs, Opts: opts}
}

func TestRunner_MinorRelease(t *testing.T) {
	git := cleanRepo()
	fs := repoFiles()

	result, err := runner(git, fs, Options{Kind: "minor"}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, KindMinor, result.Kind)
	assert.Equal(t, semver.Version{Major: 1, Minor: 3, Patch: 2}, result.Current)
	assert.Equal(t, semver.Version{Major: 1, Minor: 4}, result.Next)
	assert.Equal(t, "v1.4.0", result.Tag)

	assert.Equal(t, "{\n  \"version\": \"1.4.0\",\n}\n", fs["package.json"])
	assert.Equal(t, "version: 1.4.0\nimage: web:1.4.0\n", fs["deploy.yml"])
	assert.Equal(t, "hello\n", fs["README.md"])

	assert.Equal(t, []string{"package.json", "deploy.yml"}, git.added)
	assert.Equal(t, []string{"1.4.0"}, git.commits)
	require.Len(t, git.tags, 1)
	assert.Equal(t, [2]string{"v1.4.0", "release 1.4.0"}, git.tags[0])
	assert.True(t, git.pushed)
	assert.True(t, git.tagPushed)
	assert.True(t, result.Committed)
	assert.True(t, result.Tagged)
	assert.True(t, result.Pushed)
}

func TestRunner_DryRunMutatesNothing(t *testing.T) {
	git := cleanRepo()
	fs := repoFiles()
	before := repoFiles()

	result, err := runner(git, fs, Options{Kind: "major", DryRun: true}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, semver.Version{Major: 2}, result.Next)
	assert.Len(t, result.Rewritten, 2)
	assert.Equal(t, map[string]string(before), map[string]string(fs))
	assert.Empty(t, git.added)
	assert.Empty(t, git.commits)
	assert.Empty(t, git.tags)
	assert.False(t, git.pushed)
}

func TestRunner_LocalOnlySkipsPush(t *testing.T) {
	git := cleanRepo()

	result, err := runner(git, repoFiles(), Options{Kind: "patch", LocalOnly: true}).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Tagged)
	assert.False(t, result.Pushed)
	assert.False(t, git.pushed)
	assert.False(t, git.tagPushed)
}

func TestRunner_BranchPrecondition(t *testing.T) {
	git := cleanRepo()
	git.branch = "feature/x"
	fs := repoFiles()

	_, err := runner(git, fs, Options{Kind: "patch"}).Run(context.Background())
	assert.ErrorIs(t, err, oerrors.ErrPreconditionFailed)
	assert.Equal(t, repoFiles()["deploy.yml"], fs["deploy.yml"])
	assert.Empty(t, git.commits)

	_, err = runner(git, fs, Options{Kind: "patch", SkipBranchCheck: true}).Run(context.Background())
	require.NoError(t, err)
}

func TestRunner_DirtyTreePreconditions(t *testing.T) {
	tests := []struct {
		name   string
		status []string
		skip   Options
	}{
		{"uncommitted", []string{" M deploy.yml"}, Options{SkipUncommittedCheck: true}},
		{"untracked", []string{"?? notes.txt"}, Options{SkipUntrackedCheck: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			git := cleanRepo()
			git.status = tt.status

			_, err := runner(git, repoFiles(), Options{Kind: "patch"}).Run(context.Background())
			assert.ErrorIs(t, err, oerrors.ErrPreconditionFailed)

			opts := tt.skip
			opts.Kind = "patch"
			_, err = runner(git, repoFiles(), opts).Run(context.Background())
			require.NoError(t, err)
		})
	}
}

func TestRunner_SkipChecksSkipsAll(t *testing.T) {
	git := cleanRepo()
	git.branch = "develop"
	git.status = []string{" M deploy.yml", "?? notes.txt"}

	_, err := runner(git, repoFiles(), Options{Kind: "patch", SkipChecks: true}).Run(context.Background())
	require.NoError(t, err)
}

func TestRunner_NotARepo(t *testing.T) {
	git := cleanRepo()
	git.repo = false

	_, err := runner(git, repoFiles(), Options{Kind: "patch"}).Run(context.Background())
	assert.ErrorIs(t, err, oerrors.ErrPreconditionFailed)
}

func TestRunner_GitDescribeFailureRecoverable(t *testing.T) {
	git := cleanRepo()
	git.describeErr = oerrors.NewGitError([]string{"describe", "--tags"}, "fatal: no names found", assert.AnError)
	git.describe = semver.Version{}

	result, err := runner(git, repoFiles(), Options{Kind: "patch"}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.GitRecovered)
	assert.Equal(t, semver.Version{Major: 1, Minor: 3, Patch: 2}, result.Current)
}

func TestRunner_NoVersionAnywhere(t *testing.T) {
	git := cleanRepo()
	git.files = []string{"README.md"}
	git.describeErr = oerrors.NewGitError([]string{"describe", "--tags"}, "fatal: no names found", assert.AnError)

	_, err := runner(git, mapFS{"README.md": "hello\n"}, Options{Kind: "patch"}).Run(context.Background())
	assert.ErrorIs(t, err, oerrors.ErrNoVersionFound)
}

func TestRunner_ForcedVersionBootstrapsEmptyProject(t *testing.T) {
	git := cleanRepo()
	git.files = []string{"README.md"}
	git.describeErr = oerrors.NewGitError([]string{"describe", "--tags"}, "fatal: no names found", assert.AnError)

	result, err := runner(git, mapFS{"README.md": "hello\n"}, Options{Kind: "patch", ForceVersion: "0.1.0"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, semver.Version{}, result.Current)
	assert.Equal(t, semver.Version{Minor: 1}, result.Next)
	// Nothing to rewrite or commit, but the tag is still cut.
	assert.Empty(t, git.commits)
	require.Len(t, git.tags, 1)
	assert.Equal(t, "v0.1.0", git.tags[0][0])
}

func TestRunner_FromGitIsSoleSource(t *testing.T) {
	git := cleanRepo()
	git.describe = semver.Version{Major: 2}
	fs := repoFiles()

	result, err := runner(git, fs, Options{Kind: "minor", FromGit: true}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 2}, result.Current)
	assert.Equal(t, semver.Version{Major: 2, Minor: 1}, result.Next)
}

func TestRunner_ForceVersionFromGitMutuallyExclusive(t *testing.T) {
	git := cleanRepo()

	_, err := runner(git, repoFiles(), Options{Kind: "minor", FromGit: true, ForceVersion: "2.0.0"}).Run(context.Background())
	assert.ErrorIs(t, err, oerrors.ErrPreconditionFailed)
}

func TestRunner_ForceVersionValidatedStrictly(t *testing.T) {
	git := cleanRepo()

	for _, bad := range []string{"v2.0.0", "2.0", "2.0.0-rc.1"} {
		_, err := runner(git, repoFiles(), Options{Kind: "minor", ForceVersion: bad}).Run(context.Background())
		assert.ErrorIs(t, err, oerrors.ErrMalformedVersion, bad)
	}
}

func TestRunner_UnsupportedKind(t *testing.T) {
	git := cleanRepo()

	_, err := runner(git, repoFiles(), Options{Kind: "weekly"}).Run(context.Background())
	assert.ErrorIs(t, err, oerrors.ErrUnsupportedReleaseKind)
}

func TestRunner_NoRollbackAfterMutation(t *testing.T) {
	git := cleanRepo()
	git.commitErr = oerrors.NewGitError([]string{"commit"}, "fatal: unable to write", assert.AnError)
	fs := repoFiles()

	result, err := runner(git, fs, Options{Kind: "patch"}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrGitCommand)

	// Files stay rewritten on disk and the result names them.
	assert.Equal(t, "version: 1.3.3\nimage: web:1.3.3\n", fs["deploy.yml"])
	require.Len(t, result.Rewritten, 2)
	assert.False(t, result.Committed)
	assert.Empty(t, git.tags)
}

func TestRunner_PushFailureReportsTaggedState(t *testing.T) {
	git := cleanRepo()
	git.pushErr = oerrors.NewGitError([]string{"push"}, "fatal: could not read from remote", assert.AnError)

	result, err := runner(git, repoFiles(), Options{Kind: "patch"}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, result.Committed)
	assert.True(t, result.Tagged)
	assert.False(t, result.Pushed)
}

func TestRunner_LiteralVersionKind(t *testing.T) {
	git := cleanRepo()
	fs := repoFiles()

	result, err := runner(git, fs, Options{Kind: "3.0.0"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindForced, result.Kind)
	assert.Equal(t, semver.Version{Major: 3}, result.Next)
	assert.Equal(t, "version: 3.0.0\nimage: web:3.0.0\n", fs["deploy.yml"])
}
