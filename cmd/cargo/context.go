package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/LexxFedoroff/cargo/internal/config"
	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/logging"
	"github.com/LexxFedoroff/cargo/internal/ops"
	"github.com/LexxFedoroff/cargo/internal/outcome"
	"github.com/LexxFedoroff/cargo/internal/shell"
)

// engineFactory builds the engine a command talks to.
type engineFactory func(cfg *config.Config, logger *slog.Logger) engine.Engine

func defaultEngineFactory(cfg *config.Config, logger *slog.Logger) engine.Engine {
	return engine.NewProcess(cfg.Engine.Command, cfg.LockPoll(), logger)
}

type commandContext struct {
	configFlag string
	colorFlag  string
	quietFlag  bool

	newEngine engineFactory

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(newEngine engineFactory) *commandContext {
	if newEngine == nil {
		newEngine = defaultEngineFactory
	}
	return &commandContext{newEngine: newEngine}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = outcome.Fail(fmt.Errorf("load config: %w", err))
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// shellConfig merges the global flags over the configured [term] section.
// Flags win; a config that failed to load contributes nothing.
func (c *commandContext) shellConfig() (shell.Config, error) {
	var cfg shell.Config
	if loaded := c.config; loaded != nil {
		cfg.Verbose = loaded.Term.Verbose
		cfg.Quiet = loaded.Term.Quiet
		cfg.Color = shell.ColorMode(loaded.Term.Color)
	}
	if c.quietFlag {
		cfg.Quiet = true
		cfg.Verbose = false
	}
	if flag := strings.TrimSpace(c.colorFlag); flag != "" {
		mode, err := shell.ParseColorMode(flag)
		if err != nil {
			return shell.Config{}, &outcome.UsageError{Message: err.Error()}
		}
		cfg.Color = mode
	}
	return cfg, nil
}

// baseShell returns the invocation's shell; an invalid --color falls back to
// auto so errors can still be printed.
func (c *commandContext) baseShell(stdout, stderr io.Writer) *shell.Shell {
	cfg, err := c.shellConfig()
	if err != nil {
		cfg.Color = shell.ColorAuto
	}
	return shell.New(stdout, stderr, cfg)
}

// env assembles what an executor needs for cmd.
func (c *commandContext) env(cmd *cobra.Command) (ops.Env, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return ops.Env{}, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return ops.Env{}, outcome.Fail(fmt.Errorf("init logger: %w", err))
	}
	return ops.Env{
		Engine:      c.newEngine(cfg, logger),
		Shell:       c.baseShell(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		Logger:      logger,
		DefaultJobs: cfg.DefaultJobs(),
	}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
