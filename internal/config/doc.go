// Package config loads, normalizes, and validates cargo's own settings.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment overrides such as CARGO_ENGINE,
// CARGO_LOG, and CARGO_TERM_COLOR. These are settings of the command layer:
// which engine executable to run, terminal behaviour, default parallelism,
// and logging. Package manifests are not read here.
package config
