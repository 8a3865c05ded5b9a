// Package errors provides sentinel errors for the reltag CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrMalformedVersion indicates a version string that does not parse.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrNoVersionFound indicates that neither the scanned files nor git
	// produced any version signal.
	ErrNoVersionFound = errors.New("no version found")

	// ErrUnsupportedReleaseKind indicates an unknown release kind argument.
	ErrUnsupportedReleaseKind = errors.New("unsupported release kind")

	// ErrUnsupportedFileType indicates a file outside the pattern rule set.
	// Internal: the scanner and rewriter share one classification, so this
	// should not surface to users.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrPreconditionFailed indicates a failed pre-mutation validation:
	// dirty tree, wrong branch, untracked files, or not a git repository.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrGitCommand indicates a git invocation that returned non-zero.
	ErrGitCommand = errors.New("git command failed")
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error refers to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewPreconditionError creates a precondition failure with details.
func NewPreconditionError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "precondition failed",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrPreconditionFailed,
	}
}

// NewNoVersionError creates the no-version-signal failure.
func NewNoVersionError(dir string) error {
	return &DetailError{
		Type:     "no version found",
		Message:  "no version detected in any candidate file and git describe produced nothing",
		Location: dir,
		Hint:     "Force an initial version with --force-version to bootstrap an unversioned project",
		Cause:    ErrNoVersionFound,
	}
}

// NewGitError wraps a failed git invocation with its raw stderr output.
func NewGitError(args []string, stderr string, cause error) error {
	return &DetailError{
		Type:    "git command failed",
		Message: fmt.Sprintf("git %s: %v", strings.Join(args, " "), cause),
		Context: gitContext(stderr),
		Cause:   fmt.Errorf("%w: %w", ErrGitCommand, cause),
	}
}

func gitContext(stderr string) map[string]string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return nil
	}
	return map[string]string{"stderr": stderr}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
