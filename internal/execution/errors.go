package execution

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// ErrEnvironment marks failures to start an external program. They abort the
// whole suite since every later case would fail the same way.
var ErrEnvironment = errors.New("environment error")

// SetupError is returned when a case cannot start in its working root.
type SetupError struct {
	Root string
	Err  error
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("working root `%s` is not a directory", e.Root)
	}
	return fmt.Sprintf("working root `%s` is not available: %v", e.Root, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// MalformedError is returned for a command line without any tokens.
type MalformedError struct {
	Command  string
	Location string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed command %q at %s", e.Command, e.Location)
}

// CommandFailure wraps an error raised while executing one command.
type CommandFailure struct {
	Command  string
	Location string
	Err      error
}

func (e *CommandFailure) Error() string {
	return fmt.Sprintf("command `%s` at %s failed: %v", e.Command, e.Location, e.Err)
}

func (e *CommandFailure) Unwrap() error {
	return e.Err
}

// MismatchError reports output that differs from the transcript.
type MismatchError struct {
	Command    string
	SourcePath string
	SourceLine int
	Expected   string
	Actual     string
	Diff       string
}

func newMismatchError(command, sourcePath string, sourceLine int, expected, actual string) *MismatchError {
	return &MismatchError{
		Command:    command,
		SourcePath: sourcePath,
		SourceLine: sourceLine,
		Expected:   expected,
		Actual:     actual,
		Diff:       cmp.Diff(expected, actual),
	}
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("command `%s` at %s:%d produced unexpected output (-expected +actual):\n%s",
		e.Command, e.SourcePath, e.SourceLine, e.Diff)
}
