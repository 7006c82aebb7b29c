package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LexxFedoroff/cargo/internal/outcome"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cargo",
		Short:         "Rust's package manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &outcome.UsageError{
					Message: fmt.Sprintf("no such subcommand: `%s`", args[0]),
					Help:    cmd.UsageString(),
				}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.shellConfig(); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &outcome.UsageError{Message: err.Error(), Help: cmd.UsageString()}
	})

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.colorFlag, "color", "", "Coloring: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&ctx.quietFlag, "quiet", "q", false, "No output printed to stdout")

	rootCmd.AddCommand(newBenchCommand(ctx))
	rootCmd.AddCommand(newTestCommand(ctx))
	rootCmd.AddCommand(newUpdateCommand(ctx))
	rootCmd.AddCommand(newLocateProjectCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// noArgs rejects positional arguments with a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &outcome.UsageError{
			Message: fmt.Sprintf("unexpected argument `%s` found", args[0]),
			Help:    cmd.UsageString(),
		}
	}
	return nil
}
