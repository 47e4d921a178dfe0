package build

import (
	"errors"
	"fmt"
)

var (
	// ErrToolUnavailable means the packaging tool could not be invoked at all.
	ErrToolUnavailable = errors.New("packaging tool unavailable")

	// ErrSourceNotFound means a job's source file was not found under the root.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrNonZeroExit is returned when the tool completes with a non-zero code.
	// Use errors.As with ExitCodeError to read the code.
	ErrNonZeroExit = errors.New("tool exited with non-zero code")

	// ErrArtifactMissing means the tool exited 0 but produced no artifact.
	ErrArtifactMissing = errors.New("artifact missing after successful exit")

	// ErrRunInProgress is returned by Worker.Submit while a run is active.
	ErrRunInProgress = errors.New("a build run is already in progress")

	errTimedOut = errors.New("timed out")
)

// ExitCodeError wraps an exit code for programmatic access.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// nonZeroExit builds the error recorded for a ToolFailure outcome.
func nonZeroExit(code int) error {
	return fmt.Errorf("%w: %w", ErrNonZeroExit, ExitCodeError{Code: code})
}
