// Package options holds the option model of each subcommand: its flag
// grammar, defaults, and shape validation.
//
// A model is populated either by Parse* from raw tokens or by cobra binding
// AddFlags to a command and calling Complete with the leftover arguments.
// Both routes go through the same grammar, so the two can never disagree.
// Nothing here looks across fields; mutual exclusivity is the executor's (or
// the engine's) concern.
package options
