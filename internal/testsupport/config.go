package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LexxFedoroff/cargo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory. CARGO_HOME
// points into it and the CARGO_* overrides are cleared for the test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "cargo-home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir cargo home: %v", err)
	}
	t.Setenv("CARGO_HOME", home)
	for _, key := range []string{"CARGO_ENGINE", "CARGO_LOG", "CARGO_TERM_COLOR"} {
		t.Setenv(key, "")
	}

	cfgVal := config.Default()
	cfgVal.Engine.LockPollMillis = 10
	cfgVal.Term.Color = "never"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithEngineCommand overrides the engine executable on the test config.
func WithEngineCommand(command string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.Command = command
	}
}

// WithJobs sets the default parallelism on the test config.
func WithJobs(jobs int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Build.Jobs = jobs
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the configured engine command is
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Engine.Command}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}
