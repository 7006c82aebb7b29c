package options

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/LexxFedoroff/cargo/internal/outcome"
)

// ErrHelp is returned by the Parse functions when -h/--help was given.
var ErrHelp = pflag.ErrHelp

// Harness is the grammar shared by `cargo bench` and `cargo test`.
type Harness struct {
	NoRun             bool
	Package           string
	Jobs              uint
	Features          []string
	NoDefaultFeatures bool
	Target            string
	TargetName        string
	ManifestPath      string
	Verbose           bool

	// Args are the trailing arguments passed to the generated binaries.
	Args []string
}

// Bench is the option model for `cargo bench`.
type Bench struct {
	Harness
}

// Test is the option model for `cargo test`.
type Test struct {
	Harness
}

type harnessText struct {
	noun string
	verb string
}

var (
	benchText = harnessText{noun: "benchmarks", verb: "benchmarked"}
	testText  = harnessText{noun: "tests", verb: "tested"}
)

// AddFlags declares the bench grammar on fs.
func (o *Bench) AddFlags(fs *pflag.FlagSet) { o.addFlags(fs, benchText) }

// AddFlags declares the test grammar on fs.
func (o *Test) AddFlags(fs *pflag.FlagSet) { o.addFlags(fs, testText) }

func (h *Harness) addFlags(fs *pflag.FlagSet, text harnessText) {
	if fs == nil {
		return
	}
	fs.SortFlags = false
	fs.BoolVar(&h.NoRun, "no-run", h.NoRun, fmt.Sprintf("Compile, but don't run %s", text.noun))
	fs.StringVarP(&h.Package, "package", "p", h.Package, fmt.Sprintf("Package to run %s for", text.noun))
	fs.UintVarP(&h.Jobs, "jobs", "j", h.Jobs, "The number of jobs to run in parallel")
	fs.StringArrayVar(&h.Features, "features", h.Features, "Space-separated list of features to also build")
	fs.BoolVar(&h.NoDefaultFeatures, "no-default-features", h.NoDefaultFeatures, "Do not build the default feature")
	fs.StringVar(&h.Target, "target", h.Target, "Build for the target triple")
	fs.StringVarP(&h.TargetName, "target-name", "t", h.TargetName, fmt.Sprintf("Run %s for target with NAME", text.noun))
	fs.StringVar(&h.ManifestPath, "manifest-path", h.ManifestPath, fmt.Sprintf("Path to the manifest to build %s for", text.noun))
	fs.BoolVarP(&h.Verbose, "verbose", "v", h.Verbose, "Use verbose output")
}

// Complete finishes a model after fs has parsed: it normalizes the feature
// list, checks --jobs, and records the trailing arguments.
func (h *Harness) Complete(fs *pflag.FlagSet, args []string) error {
	if fs != nil && fs.Changed("jobs") && h.Jobs == 0 {
		return errors.New("invalid value for --jobs: must be at least 1")
	}
	h.Features = splitFeatures(h.Features)
	h.Args = append([]string{}, args...)
	return nil
}

// ParseBench parses the tokens following `cargo bench`.
func ParseBench(tokens []string) (*Bench, error) {
	opts := &Bench{}
	fs := newFlagSet("bench")
	opts.AddFlags(fs)
	if err := parseHarness(fs, &opts.Harness, tokens, BenchUsage); err != nil {
		return nil, err
	}
	return opts, nil
}

// ParseTest parses the tokens following `cargo test`.
func ParseTest(tokens []string) (*Test, error) {
	opts := &Test{}
	fs := newFlagSet("test")
	opts.AddFlags(fs)
	if err := parseHarness(fs, &opts.Harness, tokens, TestUsage); err != nil {
		return nil, err
	}
	return opts, nil
}

func parseHarness(fs *pflag.FlagSet, h *Harness, tokens []string, usage func(*pflag.FlagSet) string) error {
	if err := fs.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ErrHelp
		}
		return &outcome.UsageError{Message: err.Error(), Help: usage(fs)}
	}
	if err := h.Complete(fs, fs.Args()); err != nil {
		return &outcome.UsageError{Message: err.Error(), Help: usage(fs)}
	}
	return nil
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

// splitFeatures flattens repeated --features values that may themselves be
// space- or comma-separated lists.
func splitFeatures(values []string) []string {
	out := []string{}
	for _, value := range values {
		for _, feature := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t'
		}) {
			out = append(out, feature)
		}
	}
	return out
}
