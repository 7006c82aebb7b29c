package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LexxFedoroff/cargo/internal/config"
	"github.com/LexxFedoroff/cargo/internal/deps"
	"github.com/LexxFedoroff/cargo/internal/outcome"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        noArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return outcome.Fail(fmt.Errorf("determine default config path: %w", err))
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return outcome.Fail(fmt.Errorf("resolve config path: %w", err))
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return outcome.Failf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return outcome.Fail(fmt.Errorf("check config path: %w", err))
				}
			}

			if err := config.CreateSample(target); err != nil {
				return outcome.Fail(fmt.Errorf("create sample config: %w", err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", filepath.Clean(target))
			fmt.Fprintln(out, "Set [engine] command (or export CARGO_ENGINE) if the build engine is not on PATH.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file and check the build engine",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}

			statuses := deps.CheckBinaries([]deps.Requirement{deps.EngineRequirement(cfg.Engine.Command)})
			for _, status := range statuses {
				state := "available"
				if !status.Available {
					state = status.Detail
				}
				fmt.Fprintf(out, "%s: %s (%s)\n", status.Name, status.Command, state)
			}
			if missing := deps.Missing(statuses); len(missing) > 0 {
				return outcome.Failf("%s unavailable: %s", strings.ToLower(missing[0].Name), missing[0].Detail)
			}

			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			jobs := "engine default"
			if n := cfg.DefaultJobs(); n > 0 {
				jobs = strconv.FormatUint(uint64(n), 10)
			}
			settings := []setting{
				{"engine.command", cfg.Engine.Command},
				{"engine.lock_poll_interval_ms", strconv.Itoa(cfg.Engine.LockPollMillis)},
				{"build.jobs", jobs},
				{"term.color", cfg.Term.Color},
				{"term.verbose", yesNo(cfg.Term.Verbose)},
				{"term.quiet", yesNo(cfg.Term.Quiet)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"logging.output", cfg.Logging.Output},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			fmt.Fprintln(out, renderSettings(settings))
			return nil
		},
	}
}
