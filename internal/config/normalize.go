package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeEngine()
	c.normalizeTerm()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeEngine() {
	if value, ok := os.LookupEnv("CARGO_ENGINE"); ok && strings.TrimSpace(value) != "" {
		c.Engine.Command = value
	}
	c.Engine.Command = strings.TrimSpace(c.Engine.Command)
	if c.Engine.Command == "" {
		c.Engine.Command = defaultEngineCommand
	}
	if strings.HasPrefix(c.Engine.Command, "~") {
		if expanded, err := expandPath(c.Engine.Command); err == nil {
			c.Engine.Command = expanded
		}
	}
	if c.Engine.LockPollMillis == 0 {
		c.Engine.LockPollMillis = defaultLockPollMillis
	}
}

func (c *Config) normalizeTerm() {
	if value, ok := os.LookupEnv("CARGO_TERM_COLOR"); ok && strings.TrimSpace(value) != "" {
		c.Term.Color = value
	}
	c.Term.Color = strings.ToLower(strings.TrimSpace(c.Term.Color))
	if c.Term.Color == "" {
		c.Term.Color = defaultTermColor
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("CARGO_LOG"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Output = strings.TrimSpace(c.Logging.Output)
	switch {
	case c.Logging.Output == "":
		c.Logging.Output = defaultLogOutput
	case c.Logging.Output != "stderr" && c.Logging.Output != "stdout":
		if expanded, err := expandPath(c.Logging.Output); err == nil {
			c.Logging.Output = expanded
		}
	}
}
