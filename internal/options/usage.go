package options

import (
	"strings"

	"github.com/spf13/pflag"
)

// Usage lines, as shown at the top of each subcommand's help.
const (
	BenchUseLine  = "cargo bench [options] [--] [<args>...]"
	TestUseLine   = "cargo test [options] [--] [<args>...]"
	UpdateUseLine = "cargo update [options] [<spec>]"
)

// BenchLong is the long description of `cargo bench`.
const BenchLong = `Execute all benchmarks of a local package

All of the trailing arguments are passed to the benchmark binaries generated
for filtering benchmarks and generally providing options configuring how they
run.

If the --package argument is given, then SPEC is a package id specification
which indicates which package should be benchmarked. If it is not given, then
the current package is benchmarked.`

// TestLong is the long description of `cargo test`.
const TestLong = `Execute all unit and integration tests of a local package

All of the trailing arguments are passed to the test binaries generated for
filtering tests and generally providing options configuring how they run.

If the --package argument is given, then SPEC is a package id specification
which indicates which package should be tested. If it is not given, then the
current package is tested.`

// UpdateLong is the long description of `cargo update`.
const UpdateLong = `Update dependencies as recorded in the local lock file.

This command requires that a Cargo.lock already exists as generated by
cargo build or related commands.

If SPEC is given, then a conservative update of the lockfile will be
performed. This means that only the dependency specified by SPEC will be
updated. Its transitive dependencies will be updated only if SPEC cannot be
updated without updating dependencies. All other dependencies will remain
locked at their currently recorded versions.

If PRECISE is specified, then --aggressive must not also be specified. The
argument PRECISE is a string representing a precise revision that the package
being updated should be updated to. For example, if the package comes from a
git repository, then PRECISE would be the exact revision that the repository
should be updated to.

If SPEC is not given, then all dependencies will be re-resolved and updated.

Passing SPEC as a positional argument is deprecated; use -p/--package.`

// BenchUsage renders the bench usage block for fs.
func BenchUsage(fs *pflag.FlagSet) string { return renderUsage(BenchUseLine, fs) }

// TestUsage renders the test usage block for fs.
func TestUsage(fs *pflag.FlagSet) string { return renderUsage(TestUseLine, fs) }

// UpdateUsage renders the update usage block for fs.
func UpdateUsage(fs *pflag.FlagSet) string { return renderUsage(UpdateUseLine, fs) }

func renderUsage(useLine string, fs *pflag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n    ")
	b.WriteString(useLine)
	b.WriteString("\n\nOptions:\n")
	b.WriteString("  -h, --help   Print this message\n")
	if fs != nil {
		b.WriteString(fs.FlagUsages())
	}
	return b.String()
}
