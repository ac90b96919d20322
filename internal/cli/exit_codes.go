package cli

import "fmt"

// Exit codes for the release CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitReleaseFailed indicates the release pipeline failed
	ExitReleaseFailed = 1

	// ExitValidationFailed indicates title or config validation failed
	ExitValidationFailed = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitRepositoryError indicates the git repository was unusable
	ExitRepositoryError = 4
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError returns an error carrying a specific exit code. The message
// is expected to have been printed already; main only maps the code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitReleaseFailed
}
