// Package cmd provides command implementations for the reltag CLI.
package cmd

// Exit codes reported by the reltag binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitMalformedVersion indicates a version string that does not parse.
	ExitMalformedVersion = 2

	// ExitNoVersionFound indicates no version signal in files or git.
	ExitNoVersionFound = 3

	// ExitPreconditionFailed indicates a failed pre-release check.
	ExitPreconditionFailed = 4

	// ExitGitCommandFailed indicates a git invocation returned non-zero.
	ExitGitCommandFailed = 5

	// ExitUnsupportedReleaseKind indicates an unknown release kind argument.
	ExitUnsupportedReleaseKind = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitMalformedVersion:
		return "Malformed Version"
	case ExitNoVersionFound:
		return "No Version Found"
	case ExitPreconditionFailed:
		return "Precondition Failed"
	case ExitGitCommandFailed:
		return "Git Command Failed"
	case ExitUnsupportedReleaseKind:
		return "Unsupported Release Kind"
	default:
		return "Unknown"
	}
}
