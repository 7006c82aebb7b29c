package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LexxFedoroff/cargo/internal/testsupport"
)

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	res := runCLI(t, env, "config", "validate")
	requireExit(t, res, 0)
	requireContains(t, res.stdout, "Build engine")
	requireContains(t, res.stdout, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	res = runCLI(t, env, "config", "init", "--path", target)
	requireExit(t, res, 0)
	requireContains(t, res.stdout, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	res = runCLI(t, env, "config", "init", "--path", target)
	requireExit(t, res, 101)
	requireContains(t, res.stderr, "already exists")

	requireExit(t, runCLI(t, env, "config", "init", "--path", target, "--overwrite"), 0)
}

func TestConfigValidateMissingEngine(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithEngineCommand("definitely-missing-engine"))

	res := runCLI(t, env, "config", "validate")
	requireExit(t, res, 101)
	requireContains(t, res.stdout, "definitely-missing-engine")
	requireContains(t, res.stderr, "build engine unavailable")
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithJobs(4))

	res := runCLI(t, env, "config", "show")
	requireExit(t, res, 0)
	requireContains(t, res.stdout, "engine.command")
	requireContains(t, res.stdout, "cargo-engine")
	requireContains(t, res.stdout, "build.jobs")
	requireContains(t, res.stdout, "4")
	requireContains(t, res.stdout, "logging.output")
	lines := strings.Split(res.stdout, "\n")
	var jobsLine, pollLine string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "build.jobs"):
			jobsLine = line
		case strings.Contains(line, "lock_poll_interval_ms"):
			pollLine = line
		}
	}
	if !strings.HasSuffix(jobsLine, " 4 │") || !strings.HasSuffix(pollLine, " 10 │") {
		t.Fatalf("expected right-aligned numeric values, got %q and %q", jobsLine, pollLine)
	}
	requireContains(t, res.stdout, env.configPath)
}
