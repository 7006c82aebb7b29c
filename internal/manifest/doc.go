// Package manifest locates the project manifest that defines a package root.
//
// Discovery walks upward from a working directory looking for Cargo.toml; an
// explicit --manifest-path always wins over discovery. Parsing the manifest
// is the engine's job, not this package's.
package manifest
