package ops

import (
	"context"
	"errors"

	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/logging"
	"github.com/LexxFedoroff/cargo/internal/manifest"
	"github.com/LexxFedoroff/cargo/internal/options"
	"github.com/LexxFedoroff/cargo/internal/outcome"
)

type harnessRunner func(ctx context.Context, manifestPath string, req engine.TestRequest, args []string) (*engine.TestFailure, error)

// Bench runs `cargo bench`.
func Bench(ctx context.Context, env Env, opts *options.Bench) error {
	if env.Engine == nil {
		return outcome.Failf("no engine configured")
	}
	return runHarness(ctx, env, engine.EnvBench, &opts.Harness, env.Engine.RunBenches)
}

// Test runs `cargo test`.
func Test(ctx context.Context, env Env, opts *options.Test) error {
	if env.Engine == nil {
		return outcome.Failf("no engine configured")
	}
	return runHarness(ctx, env, engine.EnvTest, &opts.Harness, env.Engine.RunTests)
}

func runHarness(ctx context.Context, env Env, tag string, h *options.Harness, run harnessRunner) error {
	sh := env.shellFor(h.Verbose)
	logger := env.logger().With(logging.FieldCommand, "cargo-"+tag)
	logger.Debug("executing", "args", h.Args)

	root, err := manifest.FindRoot(env.Dir, h.ManifestPath)
	if err != nil {
		return outcome.Fail(err)
	}

	jobs := h.Jobs
	if jobs == 0 {
		jobs = env.DefaultJobs
	}
	req := engine.TestRequest{
		NoRun: h.NoRun,
		Compile: engine.CompileRequest{
			Env:               tag,
			Jobs:              jobs,
			Target:            h.Target,
			TargetName:        h.TargetName,
			DevDeps:           true,
			Features:          append([]string{}, h.Features...),
			NoDefaultFeatures: h.NoDefaultFeatures,
			Package:           h.Package,
			Shell:             sh,
		},
	}

	failure, err := run(ctx, root, req, h.Args)
	if err != nil {
		logger.Debug("engine failed", "error", err)
		return outcome.Fail(err)
	}
	return interpretTestFailure(failure)
}

// interpretTestFailure passes a binary's own exit status through untouched;
// anything short of a normal exit is the tool's failure.
func interpretTestFailure(failure *engine.TestFailure) error {
	if failure == nil {
		return nil
	}
	if failure.Exited() && failure.ExitCode != 0 {
		return &outcome.ChildExited{Code: failure.ExitCode}
	}
	return outcome.Fail(errors.New(failure.String()))
}
