package outcome

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Exit codes produced by the cargo CLI.
const (
	// ExitSuccess indicates the command completed and nothing more is reported.
	ExitSuccess = 0

	// ExitUsage indicates the command line could not be parsed.
	ExitUsage = 1

	// ExitToolFailure indicates cargo itself failed (missing manifest, engine
	// error, conflicting options, ...).
	ExitToolFailure = 101
)

// ToolFailure reports a failure of the tool itself. The message shown to the
// user is the wrapped error's message.
type ToolFailure struct {
	Code int
	Err  error
}

// Fail wraps err as a tool failure with the fixed tool exit code.
func Fail(err error) *ToolFailure {
	return &ToolFailure{Code: ExitToolFailure, Err: err}
}

// Failf formats a message into a tool failure.
func Failf(format string, args ...any) *ToolFailure {
	return Fail(fmt.Errorf(format, args...))
}

func (f *ToolFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("command failed with exit code %d", f.Code)
	}
	return f.Err.Error()
}

func (f *ToolFailure) Unwrap() error { return f.Err }

// ChildExited reports that a process spawned on the user's behalf (a test or
// benchmark binary) ran and exited with Code. It is passed through verbatim
// and silently.
type ChildExited struct {
	Code int
}

func (c *ChildExited) Error() string {
	return fmt.Sprintf("process exited with status %d", c.Code)
}

// UsageError reports malformed command-line input. Help holds the
// subcommand's usage text.
type UsageError struct {
	Message string
	Help    string
}

func (u *UsageError) Error() string { return u.Message }

// Report is the final rendering of an error: the process exit code, the
// message to print (empty means print nothing), and optional help text.
type Report struct {
	Code    int
	Message string
	Help    string
}

// Resolve maps err onto a Report. A nil error is success.
func Resolve(err error) Report {
	if err == nil {
		return Report{Code: ExitSuccess}
	}

	var child *ChildExited
	if errors.As(err, &child) {
		if !validExitCode(child.Code) || child.Code == ExitSuccess {
			return Report{Code: ExitToolFailure, Message: child.Error()}
		}
		return Report{Code: child.Code}
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return Report{Code: ExitUsage, Message: usage.Message, Help: usage.Help}
	}

	if errors.Is(err, context.Canceled) {
		return Report{Code: ExitToolFailure}
	}

	var failure *ToolFailure
	if errors.As(err, &failure) {
		code := failure.Code
		if code == ExitSuccess || !validExitCode(code) {
			code = ExitToolFailure
		}
		return Report{Code: code, Message: strings.TrimSpace(failure.Error())}
	}

	return Report{Code: ExitToolFailure, Message: strings.TrimSpace(err.Error())}
}

// validExitCode reports whether code survives os.Exit unchanged. Statuses
// outside 0..255 are truncated by the platform.
func validExitCode(code int) bool {
	return code >= 0 && code <= 255
}
