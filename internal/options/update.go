package options

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/LexxFedoroff/cargo/internal/outcome"
)

// Update is the option model for `cargo update`.
type Update struct {
	Package      string
	Aggressive   bool
	Precise      string
	ManifestPath string
	Verbose      bool

	// Spec is the deprecated positional form of --package. Nil when the
	// positional was not given; an explicit "" is kept.
	Spec *string
}

// AddFlags declares the update grammar on fs.
func (o *Update) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		return
	}
	fs.SortFlags = false
	fs.StringVarP(&o.Package, "package", "p", o.Package, "Package to update")
	fs.BoolVar(&o.Aggressive, "aggressive", o.Aggressive, "Force updating all dependencies of <name> as well")
	fs.StringVar(&o.Precise, "precise", o.Precise, "Update a single dependency to exactly PRECISE")
	fs.StringVar(&o.ManifestPath, "manifest-path", o.ManifestPath, "Path to the manifest to compile")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Use verbose output")
}

// Complete records the optional positional spec.
func (o *Update) Complete(args []string) error {
	switch len(args) {
	case 0:
	case 1:
		spec := args[0]
		o.Spec = &spec
	default:
		return fmt.Errorf("unexpected argument %q: update accepts at most one <spec>", args[1])
	}
	return nil
}

// ParseUpdate parses the tokens following `cargo update`.
func ParseUpdate(tokens []string) (*Update, error) {
	opts := &Update{}
	fs := newFlagSet("update")
	opts.AddFlags(fs)
	if err := fs.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &outcome.UsageError{Message: err.Error(), Help: UpdateUsage(fs)}
	}
	if err := opts.Complete(fs.Args()); err != nil {
		return nil, &outcome.UsageError{Message: err.Error(), Help: UpdateUsage(fs)}
	}
	return opts, nil
}
