package config

import (
	"errors"
	"fmt"

	"github.com/LexxFedoroff/cargo/internal/shell"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateBuild(); err != nil {
		return err
	}
	if err := c.validateTerm(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.Command == "" {
		return errors.New("engine.command must be set")
	}
	if c.Engine.LockPollMillis < 0 {
		return errors.New("engine.lock_poll_interval_ms must be positive")
	}
	return nil
}

func (c *Config) validateBuild() error {
	if c.Build.Jobs < 0 {
		return fmt.Errorf("build.jobs must be zero or positive, got %d", c.Build.Jobs)
	}
	return nil
}

func (c *Config) validateTerm() error {
	if _, err := shell.ParseColorMode(c.Term.Color); err != nil {
		return fmt.Errorf("term.color: %q is not one of auto, always, never", c.Term.Color)
	}
	if c.Term.Verbose && c.Term.Quiet {
		return errors.New("term.verbose and term.quiet cannot both be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.Output == "stdout" {
		return errors.New("logging.output: stdout is reserved for program output; use stderr or a file path")
	}
	return nil
}
