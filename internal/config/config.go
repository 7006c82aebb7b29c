package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Engine configures how the build engine is reached.
type Engine struct {
	Command        string `toml:"command"`
	LockPollMillis int    `toml:"lock_poll_interval_ms"`
}

// Build holds defaults for build-style subcommands.
type Build struct {
	Jobs int `toml:"jobs"`
}

// Term controls terminal output.
type Term struct {
	Color   string `toml:"color"`
	Verbose bool   `toml:"verbose"`
	Quiet   bool   `toml:"quiet"`
}

// Logging contains configuration for diagnostic log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// Output is "stderr" or a file path the log is appended to.
	Output string `toml:"output"`
}

// Config encapsulates all configuration values for the cargo CLI.
//
// Configuration sections:
//   - Engine: engine executable and build lock polling
//   - Build: default parallelism
//   - Term: color, verbosity, quiet output
//   - Logging: log format, level, and destination
type Config struct {
	Engine  Engine  `toml:"engine"`
	Build   Build   `toml:"build"`
	Term    Term    `toml:"term"`
	Logging Logging `toml:"logging"`
}

// Home returns the cargo home directory: $CARGO_HOME or ~/.cargo.
func Home() (string, error) {
	if value, ok := os.LookupEnv("CARGO_HOME"); ok && strings.TrimSpace(value) != "" {
		return expandPath(strings.TrimSpace(value))
	}
	return expandPath(defaultCargoHomeRelPath)
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultConfigFileName), nil
}

// Load locates, parses, and validates a configuration file. A missing file
// yields defaults. The bool reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config %s: %s", resolvedPath, strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// LockPoll returns the build lock retry interval.
func (c *Config) LockPoll() time.Duration {
	return time.Duration(c.Engine.LockPollMillis) * time.Millisecond
}

// DefaultJobs returns the configured default parallelism (0 = unset).
func (c *Config) DefaultJobs() uint {
	if c.Build.Jobs <= 0 {
		return 0
	}
	return uint(c.Build.Jobs)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
