package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/LexxFedoroff/cargo/internal/config"
	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/testsupport"
)

type cliTestEnv struct {
	cfg          *config.Config
	engine       *testsupport.FakeEngine
	configPath   string
	projectRoot  string
	srcDir       string
	manifestPath string
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	root, srcDir, manifestPath := testsupport.NewProject(t, "foo")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)
	t.Chdir(srcDir)

	return &cliTestEnv{
		cfg:          cfg,
		engine:       &testsupport.FakeEngine{},
		configPath:   configPath,
		projectRoot:  root,
		srcDir:       srcDir,
		manifestPath: manifestPath,
	}
}

func (e *cliTestEnv) factory(*config.Config, *slog.Logger) engine.Engine {
	return e.engine
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--config", env.configPath}, args...)
	code := run(context.Background(), full, &stdout, &stderr, env.factory)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireExit(t *testing.T, res cliResult, code int) {
	t.Helper()
	if res.code != code {
		t.Fatalf("expected exit %d, got %d\nstdout: %s\nstderr: %s", code, res.code, res.stdout, res.stderr)
	}
}
