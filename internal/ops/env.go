package ops

import (
	"io"
	"log/slog"

	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/logging"
	"github.com/LexxFedoroff/cargo/internal/shell"
)

// Env is what an executor needs from the process around it.
type Env struct {
	// Dir is the working directory manifest discovery starts from. Empty means
	// the process working directory.
	Dir    string
	Engine engine.Engine
	// Shell is the base output sink; each invocation derives its own from it.
	Shell  *shell.Shell
	Logger *slog.Logger
	// DefaultJobs is used when --jobs is not given. Zero leaves the choice to
	// the engine.
	DefaultJobs uint
}

// shellFor derives the invocation's shell, folding the command's --verbose
// into the base configuration.
func (e Env) shellFor(verbose bool) *shell.Shell {
	base := e.Shell
	if base == nil {
		base = shell.New(io.Discard, io.Discard, shell.Config{Color: shell.ColorNever})
	}
	cfg := base.Config()
	cfg.Verbose = cfg.Verbose || verbose
	return base.With(cfg)
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}
