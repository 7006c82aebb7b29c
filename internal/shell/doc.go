// Package shell is the user-facing output sink shared by the command layer
// and the engine.
//
// A Shell wraps the process's stdout and stderr writers, a verbosity/colour
// Config, and a single write lock so messages from cargo and from the engine
// interleave in call order. Configuration is an explicit value: callers derive
// a per-invocation Shell with With instead of toggling global state.
package shell
