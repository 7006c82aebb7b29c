// Package outcome defines how a finished command is reported to the caller.
//
// Every subcommand returns a plain error. The tagged variants in this package
// (ToolFailure, ChildExited, UsageError) carry the exit code that error
// should produce, and Resolve turns any error into the code, message, and
// help text main prints before exiting. Keeping the child-process pass-through
// and the tool's own failures as distinct types means a nonzero status from a
// user's benchmark can never be mistaken for a failure of cargo itself.
package outcome
