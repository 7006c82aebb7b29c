package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/LexxFedoroff/cargo/internal/shell"
)

// Environment tags selecting the compile profile.
const (
	EnvBench = "bench"
	EnvTest  = "test"
)

// CompileRequest selects what to build.
type CompileRequest struct {
	Env               string   `json:"env"`
	Jobs              uint     `json:"jobs,omitempty"`
	Target            string   `json:"target,omitempty"`
	TargetName        string   `json:"target_name,omitempty"`
	DevDeps           bool     `json:"dev_deps"`
	Features          []string `json:"features"`
	NoDefaultFeatures bool     `json:"no_default_features"`
	Package           string   `json:"package,omitempty"`

	Shell *shell.Shell `json:"-"`
}

// TestRequest asks the engine to build and optionally run test or bench
// binaries.
type TestRequest struct {
	NoRun   bool           `json:"no_run"`
	Compile CompileRequest `json:"compile"`
}

// UpdateRequest asks the engine to update the lock file. An empty ToUpdate
// means every dependency is re-resolved.
type UpdateRequest struct {
	ToUpdate   string `json:"to_update,omitempty"`
	Aggressive bool   `json:"aggressive"`
	Precise    string `json:"precise,omitempty"`

	Shell *shell.Shell `json:"-"`
}

// Validate enforces the engine's update preconditions.
func (r UpdateRequest) Validate() error {
	if r.Aggressive && strings.TrimSpace(r.Precise) != "" {
		return &ConflictingOptionsError{Options: []string{"aggressive", "precise"}}
	}
	return nil
}

// ConflictingOptionsError reports options the grammar accepts but the engine
// cannot honour together.
type ConflictingOptionsError struct {
	Options []string
}

func (e *ConflictingOptionsError) Error() string {
	return fmt.Sprintf("cannot specify both %s simultaneously", strings.Join(e.Options, " and "))
}

// TestFailure describes a test or bench binary that did not succeed.
// ExitCode is the binary's exit status, or -1 when it did not exit normally
// (killed by a signal, could not be launched).
type TestFailure struct {
	Message  string
	ExitCode int
}

// Exited reports whether the binary ran to completion with a status code.
func (f *TestFailure) Exited() bool { return f.ExitCode >= 0 }

func (f *TestFailure) String() string {
	if f.Message != "" {
		return f.Message
	}
	if f.Exited() {
		return fmt.Sprintf("process didn't exit successfully (exit status: %d)", f.ExitCode)
	}
	return "process didn't exit successfully"
}

// Error is a structured failure reported by the engine.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return e.Message
}

// Engine is the entry point set the command layer invokes. Calls block until
// the engine finishes.
type Engine interface {
	// RunBenches compiles and runs the package's benchmarks. A nil error with a
	// non-nil TestFailure means the build succeeded but a benchmark binary
	// failed.
	RunBenches(ctx context.Context, manifestPath string, req TestRequest, args []string) (*TestFailure, error)
	// RunTests is RunBenches for the test profile.
	RunTests(ctx context.Context, manifestPath string, req TestRequest, args []string) (*TestFailure, error)
	// UpdateLockfile updates the lock file next to manifestPath.
	UpdateLockfile(ctx context.Context, manifestPath string, req UpdateRequest) error
}
