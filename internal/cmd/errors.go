package cmd

import (
	"errors"

	oerrors "github.com/reltag/cli/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for ExitError first
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Check for sentinel errors. Precondition and git failures can wrap
	// each other; the earlier, more specific cause wins.
	switch {
	case errors.Is(err, oerrors.ErrMalformedVersion):
		return ExitMalformedVersion
	case errors.Is(err, oerrors.ErrNoVersionFound):
		return ExitNoVersionFound
	case errors.Is(err, oerrors.ErrPreconditionFailed):
		return ExitPreconditionFailed
	case errors.Is(err, oerrors.ErrGitCommand):
		return ExitGitCommandFailed
	case errors.Is(err, oerrors.ErrUnsupportedReleaseKind):
		return ExitUnsupportedReleaseKind
	default:
		return ExitGeneralError
	}
}
