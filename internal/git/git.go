// Package git wraps calls to the external git binary.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/semver"
)

// Binary wraps calls to the external git binary, rooted at one repository.
type Binary struct {
	// Path is the path to the git binary. If empty, "git" is used from PATH.
	Path string

	// Dir is the repository root every command runs in. If empty, the
	// current working directory is used.
	Dir string
}

// NewBinary creates a new Binary wrapper using "git" from PATH, rooted at dir.
func NewBinary(dir string) *Binary {
	return &Binary{
		Path: "git",
		Dir:  dir,
	}
}

// IsRepo reports whether Dir is inside a git working tree.
func (b *Binary) IsRepo(ctx context.Context) bool {
	_, err := b.runCapture(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the checked-out branch name.
func (b *Binary) CurrentBranch(ctx context.Context) (string, error) {
	out, err := b.runCapture(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Status returns the porcelain status lines, one per changed or untracked
// path. A clean tree yields an empty slice.
func (b *Binary) Status(ctx context.Context) ([]string, error) {
	out, err := b.runCapture(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// LsFiles returns every path git tracks in the repository.
func (b *Binary) LsFiles(ctx context.Context) ([]string, error) {
	out, err := b.runCapture(ctx, "ls-files")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Describe returns the version parsed from `git describe --tags`. The raw
// describe output may carry a commit-distance suffix; parsing truncates it.
func (b *Binary) Describe(ctx context.Context) (semver.Version, error) {
	out, err := b.runCapture(ctx, "describe", "--tags")
	if err != nil {
		return semver.Version{}, err
	}
	return semver.Parse(strings.TrimSpace(string(out)))
}

// Add stages the given paths.
func (b *Binary) Add(ctx context.Context, paths ...string) error {
	_, err := b.runCapture(ctx, append([]string{"add", "--"}, paths...)...)
	return err
}

// Commit records the staged changes with the given message.
func (b *Binary) Commit(ctx context.Context, message string) error {
	_, err := b.runCapture(ctx, "commit", "-m", message)
	return err
}

// TagAnnotated creates an annotated tag with the given message.
func (b *Binary) TagAnnotated(ctx context.Context, name, message string) error {
	_, err := b.runCapture(ctx, "tag", "-a", name, "-m", message)
	return err
}

// Push pushes the current branch to its upstream.
func (b *Binary) Push(ctx context.Context) error {
	_, err := b.runCapture(ctx, "push")
	return err
}

// PushTags pushes tags to the upstream.
func (b *Binary) PushTags(ctx context.Context) error {
	_, err := b.runCapture(ctx, "push", "--tags")
	return err
}

// runCapture executes a git command in Dir and captures its output. A
// non-zero exit becomes an ErrGitCommand with the raw stderr attached.
func (b *Binary) runCapture(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, b.path(), args...)
	cmd.Dir = b.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.NewGitError(args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

func (b *Binary) path() string {
	if b.Path != "" {
		return b.Path
	}
	return "git"
}

// splitLines splits command output into non-empty lines. Leading whitespace
// is kept per line: porcelain status lines carry meaning in their first two
// columns.
func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(string(out), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
