package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LexxFedoroff/cargo/internal/ops"
	"github.com/LexxFedoroff/cargo/internal/options"
	"github.com/LexxFedoroff/cargo/internal/outcome"
)

func newBenchCommand(ctx *commandContext) *cobra.Command {
	opts := &options.Bench{}
	cmd := &cobra.Command{
		Use:   "bench [options] [--] [<args>...]",
		Short: "Execute all benchmarks of a local package",
		Long:  options.BenchLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags(), args); err != nil {
				return &outcome.UsageError{Message: err.Error(), Help: benchUsage()}
			}
			env, err := ctx.env(cmd)
			if err != nil {
				return err
			}
			return ops.Bench(cmd.Context(), env, opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	bindUsage(cmd, options.BenchLong, benchUsage)
	return cmd
}

func newTestCommand(ctx *commandContext) *cobra.Command {
	opts := &options.Test{}
	cmd := &cobra.Command{
		Use:   "test [options] [--] [<args>...]",
		Short: "Execute all unit and integration tests of a local package",
		Long:  options.TestLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags(), args); err != nil {
				return &outcome.UsageError{Message: err.Error(), Help: testUsage()}
			}
			env, err := ctx.env(cmd)
			if err != nil {
				return err
			}
			return ops.Test(cmd.Context(), env, opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	bindUsage(cmd, options.TestLong, testUsage)
	return cmd
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	opts := &options.Update{}
	cmd := &cobra.Command{
		Use:   "update [options] [<spec>]",
		Short: "Update dependencies as recorded in the local lock file",
		Long:  options.UpdateLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(args); err != nil {
				return &outcome.UsageError{Message: err.Error(), Help: updateUsage()}
			}
			env, err := ctx.env(cmd)
			if err != nil {
				return err
			}
			return ops.Update(cmd.Context(), env, opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	bindUsage(cmd, options.UpdateLong, updateUsage)
	return cmd
}

// The usage renderers declare the grammar on a scratch flag set so the text
// never includes cobra's own help or inherited flags.

func benchUsage() string {
	fs := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	(&options.Bench{}).AddFlags(fs)
	return options.BenchUsage(fs)
}

func testUsage() string {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	(&options.Test{}).AddFlags(fs)
	return options.TestUsage(fs)
}

func updateUsage() string {
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	(&options.Update{}).AddFlags(fs)
	return options.UpdateUsage(fs)
}

// bindUsage routes flag errors to a usage error and renders help in the
// subcommand's own format.
func bindUsage(cmd *cobra.Command, long string, usage func() string) {
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &outcome.UsageError{Message: err.Error(), Help: usage()}
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprintf(c.OutOrStdout(), "%s\n\n%s", long, usage())
	})
}
