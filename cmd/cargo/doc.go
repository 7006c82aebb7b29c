// Package main hosts the cargo CLI entrypoint and command graph.
//
// The Cobra-based command tree parses each subcommand's grammar into an
// option model, hands it to the matching executor in internal/ops, and turns
// whatever comes back into an exit code and a diagnostic. Configuration
// resolution, shell setup, and engine construction live in the command
// context so subcommands only wire flags to executors.
//
// Keep this package lean: behavior belongs in the internal packages, and
// commands here should stay declarative.
package main
