// Package engine defines the contract between the command layer and the
// build/dependency-resolution engine, and ships a client that reaches the
// engine as an external process.
//
// Requests are one-shot values built per invocation. They carry the caller's
// shell by reference so the engine can report progress while it works. The
// engine owns its own preconditions (see UpdateRequest.Validate); the command
// layer never duplicates them.
//
// Process speaks a small JSON-lines protocol: one request document on the
// engine's stdin, a stream of events on its stdout, the last of which is the
// result. Lines that are not JSON events are program output (for example a
// benchmark binary's report) and are copied to the shell's stdout.
package engine
