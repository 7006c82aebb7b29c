package ops_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/manifest"
	"github.com/LexxFedoroff/cargo/internal/ops"
	"github.com/LexxFedoroff/cargo/internal/options"
	"github.com/LexxFedoroff/cargo/internal/outcome"
	"github.com/LexxFedoroff/cargo/internal/shell"
	"github.com/LexxFedoroff/cargo/internal/testsupport"
)

type opsFixture struct {
	env          ops.Env
	engine       *testsupport.FakeEngine
	manifestPath string
	stdout       *bytes.Buffer
	stderr       *bytes.Buffer
}

func newOpsFixture(t *testing.T) *opsFixture {
	t.Helper()
	_, srcDir, manifestPath := testsupport.NewProject(t, "foo")
	fake := &testsupport.FakeEngine{}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &opsFixture{
		env: ops.Env{
			Dir:    srcDir,
			Engine: fake,
			Shell:  shell.New(stdout, stderr, shell.Config{Color: shell.ColorNever}),
		},
		engine:       fake,
		manifestPath: manifestPath,
		stdout:       stdout,
		stderr:       stderr,
	}
}

func (f *opsFixture) onlyCall(t *testing.T) testsupport.EngineCall {
	t.Helper()
	calls := f.engine.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one engine call, got %d: %#v", len(calls), calls)
	}
	return calls[0]
}

var ignoreShell = cmpopts.IgnoreFields(engine.CompileRequest{}, "Shell")

func TestBenchBuildsRequest(t *testing.T) {
	f := newOpsFixture(t)
	opts := &options.Bench{Harness: options.Harness{
		NoRun:             true,
		Package:           "bar",
		Jobs:              4,
		Features:          []string{"a", "b"},
		NoDefaultFeatures: true,
		Target:            "x86_64-unknown-linux-gnu",
		TargetName:        "speed",
		Args:              []string{"--bench", "filter"},
	}}

	if err := ops.Bench(context.Background(), f.env, opts); err != nil {
		t.Fatalf("Bench returned error: %v", err)
	}

	call := f.onlyCall(t)
	if call.Op != "bench" {
		t.Fatalf("expected bench op, got %q", call.Op)
	}
	if call.ManifestPath != f.manifestPath {
		t.Fatalf("expected manifest %q, got %q", f.manifestPath, call.ManifestPath)
	}
	want := engine.TestRequest{
		NoRun: true,
		Compile: engine.CompileRequest{
			Env:               engine.EnvBench,
			Jobs:              4,
			Target:            "x86_64-unknown-linux-gnu",
			TargetName:        "speed",
			DevDeps:           true,
			Features:          []string{"a", "b"},
			NoDefaultFeatures: true,
			Package:           "bar",
		},
	}
	if diff := cmp.Diff(want, *call.Test, ignoreShell); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"--bench", "filter"}, call.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if call.Test.Compile.Shell == nil {
		t.Fatal("expected request to carry a shell")
	}
}

func TestTestUsesTestProfile(t *testing.T) {
	f := newOpsFixture(t)
	if err := ops.Test(context.Background(), f.env, &options.Test{}); err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	call := f.onlyCall(t)
	if call.Op != "test" || call.Test.Compile.Env != engine.EnvTest {
		t.Fatalf("expected test profile, got op=%q env=%q", call.Op, call.Test.Compile.Env)
	}
	if !call.Test.Compile.DevDeps {
		t.Fatal("expected dev dependencies to be enabled")
	}
}

func TestHarnessDefaultJobs(t *testing.T) {
	f := newOpsFixture(t)
	f.env.DefaultJobs = 6

	if err := ops.Test(context.Background(), f.env, &options.Test{}); err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if got := f.onlyCall(t).Test.Compile.Jobs; got != 6 {
		t.Fatalf("expected default jobs 6, got %d", got)
	}

	f2 := newOpsFixture(t)
	f2.env.DefaultJobs = 6
	if err := ops.Test(context.Background(), f2.env, &options.Test{Harness: options.Harness{Jobs: 2}}); err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if got := f2.onlyCall(t).Test.Compile.Jobs; got != 2 {
		t.Fatalf("expected explicit jobs 2, got %d", got)
	}
}

func TestHarnessChildExitPassesThrough(t *testing.T) {
	f := newOpsFixture(t)
	f.engine.Failure = &engine.TestFailure{ExitCode: 3}

	err := ops.Bench(context.Background(), f.env, &options.Bench{})
	var exited *outcome.ChildExited
	if !errors.As(err, &exited) || exited.Code != 3 {
		t.Fatalf("expected ChildExited{3}, got %#v", err)
	}
	report := outcome.Resolve(err)
	if report.Code != 3 || report.Message != "" {
		t.Fatalf("expected silent exit 3, got %#v", report)
	}
}

func TestHarnessAbnormalFailureIsToolFailure(t *testing.T) {
	f := newOpsFixture(t)
	f.engine.Failure = &engine.TestFailure{Message: "process didn't exit successfully (signal: 9)", ExitCode: -1}

	report := outcome.Resolve(ops.Test(context.Background(), f.env, &options.Test{}))
	if report.Code != outcome.ExitToolFailure {
		t.Fatalf("expected exit %d, got %d", outcome.ExitToolFailure, report.Code)
	}
	if !strings.Contains(report.Message, "signal: 9") {
		t.Fatalf("expected failure message, got %q", report.Message)
	}
}

func TestHarnessEngineErrorIsToolFailure(t *testing.T) {
	f := newOpsFixture(t)
	f.engine.Err = &engine.Error{Op: "bench", Message: "could not compile `foo`"}

	report := outcome.Resolve(ops.Bench(context.Background(), f.env, &options.Bench{}))
	if report.Code != outcome.ExitToolFailure || report.Message != "could not compile `foo`" {
		t.Fatalf("unexpected report: %#v", report)
	}
}

func TestHarnessVerbosePropagates(t *testing.T) {
	f := newOpsFixture(t)
	var sawVerbose bool
	f.engine.Emit = func(sh *shell.Shell) {
		sawVerbose = sh.IsVerbose()
		sh.Verbose(func(s *shell.Shell) { s.Status("Running", "target/debug/foo-1234") })
	}

	if err := ops.Test(context.Background(), f.env, &options.Test{Harness: options.Harness{Verbose: true}}); err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if !sawVerbose {
		t.Fatal("expected engine to receive a verbose shell")
	}
	if !strings.Contains(f.stderr.String(), "Running target/debug/foo-1234") {
		t.Fatalf("expected verbose status on stderr, got %q", f.stderr.String())
	}
	if f.env.Shell.IsVerbose() {
		t.Fatal("base shell must not be mutated by a verbose invocation")
	}
}

func TestHarnessMissingManifestSkipsEngine(t *testing.T) {
	f := newOpsFixture(t)
	f.env.Dir = t.TempDir()

	err := ops.Bench(context.Background(), f.env, &options.Bench{})
	var notFound *manifest.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if report := outcome.Resolve(err); report.Code != outcome.ExitToolFailure {
		t.Fatalf("expected exit %d, got %d", outcome.ExitToolFailure, report.Code)
	}
	if calls := f.engine.Calls(); len(calls) != 0 {
		t.Fatalf("expected no engine calls, got %#v", calls)
	}
}

func TestHarnessManifestPathOverride(t *testing.T) {
	f := newOpsFixture(t)
	otherRoot := filepath.Join(t.TempDir(), "other")
	otherManifest := testsupport.WriteManifest(t, otherRoot, "other")

	opts := &options.Test{Harness: options.Harness{ManifestPath: otherManifest}}
	if err := ops.Test(context.Background(), f.env, opts); err != nil {
		t.Fatalf("Test returned error: %v", err)
	}
	if got := f.onlyCall(t).ManifestPath; got != otherManifest {
		t.Fatalf("expected override %q, got %q", otherManifest, got)
	}
}

func TestHarnessCanceledContext(t *testing.T) {
	f := newOpsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := outcome.Resolve(ops.Test(ctx, f.env, &options.Test{}))
	if report.Code != outcome.ExitToolFailure || report.Message != "" {
		t.Fatalf("expected silent tool failure on cancel, got %#v", report)
	}
}

func TestUpdateDeprecatedSpecWins(t *testing.T) {
	f := newOpsFixture(t)
	spec := "foo"
	opts := &options.Update{Spec: &spec, Package: "bar"}

	if err := ops.Update(context.Background(), f.env, opts); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := f.onlyCall(t).Update.ToUpdate; got != "foo" {
		t.Fatalf("expected positional spec to win, got %q", got)
	}
	if n := strings.Count(f.stderr.String(), "warning: "+ops.UpdateDeprecation); n != 1 {
		t.Fatalf("expected exactly one deprecation warning, got %d in %q", n, f.stderr.String())
	}
}

func TestUpdateEmptyPositionalStillWins(t *testing.T) {
	f := newOpsFixture(t)
	empty := ""
	opts := &options.Update{Spec: &empty, Package: "bar"}

	if err := ops.Update(context.Background(), f.env, opts); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := f.onlyCall(t).Update.ToUpdate; got != "" {
		t.Fatalf("expected explicit empty spec to win, got %q", got)
	}
	if n := strings.Count(f.stderr.String(), ops.UpdateDeprecation); n != 1 {
		t.Fatalf("expected exactly one deprecation warning, got %d in %q", n, f.stderr.String())
	}
}

func TestUpdatePackageFlag(t *testing.T) {
	f := newOpsFixture(t)
	if err := ops.Update(context.Background(), f.env, &options.Update{Package: "bar", Precise: "1.2.3"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	call := f.onlyCall(t)
	want := engine.UpdateRequest{ToUpdate: "bar", Precise: "1.2.3"}
	if diff := cmp.Diff(want, *call.Update, cmpopts.IgnoreFields(engine.UpdateRequest{}, "Shell")); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(f.stderr.String(), "warning") {
		t.Fatalf("expected no warning, got %q", f.stderr.String())
	}
}

func TestUpdateWholeLockfile(t *testing.T) {
	f := newOpsFixture(t)
	if err := ops.Update(context.Background(), f.env, &options.Update{}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := f.onlyCall(t).Update.ToUpdate; got != "" {
		t.Fatalf("expected empty spec for full update, got %q", got)
	}
}

func TestUpdatePreciseAndAggressiveRejectedByEngine(t *testing.T) {
	tests := []struct {
		name    string
		opts    options.Update
		wantErr bool
	}{
		{name: "both", opts: options.Update{Package: "foo", Aggressive: true, Precise: "1.0.0"}, wantErr: true},
		{name: "aggressive only", opts: options.Update{Package: "foo", Aggressive: true}},
		{name: "precise only", opts: options.Update{Package: "foo", Precise: "1.0.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOpsFixture(t)
			err := ops.Update(context.Background(), f.env, &tt.opts)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Update returned error: %v", err)
				}
				return
			}
			var conflict *engine.ConflictingOptionsError
			if !errors.As(err, &conflict) {
				t.Fatalf("expected ConflictingOptionsError, got %v", err)
			}
			report := outcome.Resolve(err)
			if report.Code != outcome.ExitToolFailure || !strings.Contains(report.Message, "cannot specify both aggressive and precise") {
				t.Fatalf("unexpected report: %#v", report)
			}
			if n := len(f.engine.Calls()); n != 1 {
				t.Fatalf("expected the engine to be reached, got %d calls", n)
			}
		})
	}
}

func TestUpdateMissingManifest(t *testing.T) {
	f := newOpsFixture(t)
	opts := &options.Update{ManifestPath: filepath.Join(t.TempDir(), "missing", "Cargo.toml")}

	err := ops.Update(context.Background(), f.env, opts)
	var notFound *manifest.NotFoundError
	if !errors.As(err, &notFound) || notFound.Path == "" {
		t.Fatalf("expected NotFoundError for override, got %v", err)
	}
	if calls := f.engine.Calls(); len(calls) != 0 {
		t.Fatalf("expected no engine calls, got %#v", calls)
	}
}

func TestNoEngineConfigured(t *testing.T) {
	f := newOpsFixture(t)
	f.env.Engine = nil
	if report := outcome.Resolve(ops.Update(context.Background(), f.env, &options.Update{})); report.Code != outcome.ExitToolFailure {
		t.Fatalf("expected tool failure without engine, got %#v", report)
	}
}

func TestResolveDeprecated(t *testing.T) {
	var stderr bytes.Buffer
	sh := shell.New(nil, &stderr, shell.Config{Color: shell.ColorNever})

	if got := ops.ResolveDeprecated(sh, nil, "current", "old form"); got != "current" || stderr.Len() != 0 {
		t.Fatalf("expected current value without warning, got %q / %q", got, stderr.String())
	}
	legacy := "legacy"
	if got := ops.ResolveDeprecated(sh, &legacy, "current", "old form"); got != "legacy" {
		t.Fatalf("expected legacy value, got %q", got)
	}
	if stderr.String() != "warning: old form\n" {
		t.Fatalf("unexpected warning output %q", stderr.String())
	}
	zero := 0
	if got := ops.ResolveDeprecated(nil, &zero, 3, "ignored"); got != 0 {
		t.Fatalf("expected explicit zero legacy value to win, got %d", got)
	}
}
