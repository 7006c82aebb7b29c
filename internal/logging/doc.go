// Package logging assembles the structured slog logger used for cargo's own
// diagnostics.
//
// These logs are for debugging the command layer (CARGO_LOG=debug) and are
// separate from the user-facing shell output. The package owns the console
// and JSON handlers and provides a no-op logger for tests and wiring code
// that cannot fail.
package logging
