package testsupport

import (
	"context"
	"sync"

	"github.com/LexxFedoroff/cargo/internal/engine"
	"github.com/LexxFedoroff/cargo/internal/shell"
)

// EngineCall records one invocation of FakeEngine.
type EngineCall struct {
	Op           string
	ManifestPath string
	Test         *engine.TestRequest
	Update       *engine.UpdateRequest
	Args         []string
}

// FakeEngine is an in-memory engine.Engine. It records every call and
// answers with the configured Failure and Err. Emit, when set, runs against
// the request's shell before returning so tests can observe output routing.
type FakeEngine struct {
	Failure *engine.TestFailure
	Err     error
	Emit    func(sh *shell.Shell)

	mu    sync.Mutex
	calls []EngineCall
}

var _ engine.Engine = (*FakeEngine)(nil)

// RunBenches records a bench request.
func (f *FakeEngine) RunBenches(ctx context.Context, manifestPath string, req engine.TestRequest, args []string) (*engine.TestFailure, error) {
	return f.runHarness(ctx, "bench", manifestPath, req, args)
}

// RunTests records a test request.
func (f *FakeEngine) RunTests(ctx context.Context, manifestPath string, req engine.TestRequest, args []string) (*engine.TestFailure, error) {
	return f.runHarness(ctx, "test", manifestPath, req, args)
}

// UpdateLockfile records an update request. Like a real engine it rejects
// requests that fail validation.
func (f *FakeEngine) UpdateLockfile(ctx context.Context, manifestPath string, req engine.UpdateRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.record(EngineCall{Op: "update", ManifestPath: manifestPath, Update: &req})
	if err := req.Validate(); err != nil {
		return err
	}
	f.emit(req.Shell)
	return f.Err
}

// Calls returns a copy of the recorded calls.
func (f *FakeEngine) Calls() []EngineCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]EngineCall(nil), f.calls...)
}

func (f *FakeEngine) runHarness(ctx context.Context, op, manifestPath string, req engine.TestRequest, args []string) (*engine.TestFailure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.record(EngineCall{Op: op, ManifestPath: manifestPath, Test: &req, Args: append([]string(nil), args...)})
	f.emit(req.Compile.Shell)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Failure, nil
}

func (f *FakeEngine) record(call EngineCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *FakeEngine) emit(sh *shell.Shell) {
	if f.Emit != nil && sh != nil {
		f.Emit(sh)
	}
}
