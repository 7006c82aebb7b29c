package ops

import (
	"context"

	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/logging"
	"github.com/LexxFedoroff/cargo/internal/manifest"
	"github.com/LexxFedoroff/cargo/internal/options"
	"github.com/LexxFedoroff/cargo/internal/outcome"
)

// UpdateDeprecation is printed when the positional <spec> form is used.
const UpdateDeprecation = "`cargo update foo` has been deprecated in favor of `cargo update -p foo`. " +
	"This functionality will be removed in the future"

// Update runs `cargo update`. The --precise/--aggressive precondition belongs
// to the engine and is not checked here.
func Update(ctx context.Context, env Env, opts *options.Update) error {
	if env.Engine == nil {
		return outcome.Failf("no engine configured")
	}
	sh := env.shellFor(opts.Verbose)
	logger := env.logger().With(logging.FieldCommand, "cargo-update")
	logger.Debug("executing", "spec", opts.Spec != nil, "package", opts.Package, "precise", opts.Precise, "aggressive", opts.Aggressive)

	root, err := manifest.FindRoot(env.Dir, opts.ManifestPath)
	if err != nil {
		return outcome.Fail(err)
	}

	spec := ResolveDeprecated(sh, opts.Spec, opts.Package, UpdateDeprecation)

	req := engine.UpdateRequest{
		ToUpdate:   spec,
		Aggressive: opts.Aggressive,
		Precise:    opts.Precise,
		Shell:      sh,
	}
	if err := env.Engine.UpdateLockfile(ctx, root, req); err != nil {
		logger.Debug("engine failed", "error", err)
		return outcome.Fail(err)
	}
	return nil
}
