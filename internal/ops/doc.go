// Package ops executes subcommands: it turns a parsed option model into an
// engine request, invokes the engine, and reduces whatever happened to a
// single error whose type (see package outcome) decides the exit code.
//
// Each call is one stateless pass: derive the invocation's shell, locate the
// manifest, apply subcommand rules such as deprecated argument resolution,
// build the request, call the engine, interpret the result.
package ops
