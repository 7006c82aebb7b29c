package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/LexxFedoroff/cargo/internal/logging"
	"github.com/LexxFedoroff/cargo/internal/manifest"
	"github.com/LexxFedoroff/cargo/internal/shell"
)

// Operation names passed to the engine executable as its first argument.
const (
	OpBench  = "bench"
	OpTest   = "test"
	OpUpdate = "update"
)

// Result statuses reported by the engine.
const (
	statusOK         = "ok"
	statusError      = "error"
	statusTestFailed = "test-failed"
)

// RequestIDEnv is set in the engine's environment to the request identifier.
const RequestIDEnv = "CARGO_REQUEST_ID"

// Process runs the engine as an external executable.
type Process struct {
	// Command is the engine executable name or path.
	Command string
	// LockPoll is how often a blocked build-directory lock is retried.
	LockPoll time.Duration
	Logger   *slog.Logger
}

// NewProcess returns a process-backed engine running command.
func NewProcess(command string, lockPoll time.Duration, logger *slog.Logger) *Process {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Process{Command: command, LockPoll: lockPoll, Logger: logger}
}

var _ Engine = (*Process)(nil)

type envelope struct {
	Op           string         `json:"op"`
	RequestID    string         `json:"request_id"`
	ManifestPath string         `json:"manifest_path"`
	Verbose      bool           `json:"verbose"`
	Test         *TestRequest   `json:"test,omitempty"`
	Update       *UpdateRequest `json:"update,omitempty"`
	Args         []string       `json:"args,omitempty"`
}

type event struct {
	Kind     string `json:"kind"`
	Verb     string `json:"verb,omitempty"`
	Message  string `json:"message,omitempty"`
	Status   string `json:"status,omitempty"`
	ExitCode *int   `json:"exit_code,omitempty"`
}

// RunBenches implements Engine.
func (p *Process) RunBenches(ctx context.Context, manifestPath string, req TestRequest, args []string) (*TestFailure, error) {
	return p.runTests(ctx, OpBench, manifestPath, req, args)
}

// RunTests implements Engine.
func (p *Process) RunTests(ctx context.Context, manifestPath string, req TestRequest, args []string) (*TestFailure, error) {
	return p.runTests(ctx, OpTest, manifestPath, req, args)
}

// UpdateLockfile implements Engine.
func (p *Process) UpdateLockfile(ctx context.Context, manifestPath string, req UpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	res, err := p.invoke(ctx, req.Shell, envelope{
		Op:           OpUpdate,
		ManifestPath: manifestPath,
		Update:       &req,
	})
	if err != nil {
		return err
	}
	switch res.Status {
	case statusOK:
		return nil
	case statusError:
		return &Error{Op: OpUpdate, Message: res.Message}
	default:
		return fmt.Errorf("engine reported unexpected result %q for %s", res.Status, OpUpdate)
	}
}

func (p *Process) runTests(ctx context.Context, op, manifestPath string, req TestRequest, args []string) (*TestFailure, error) {
	res, err := p.invoke(ctx, req.Compile.Shell, envelope{
		Op:           op,
		ManifestPath: manifestPath,
		Test:         &req,
		Args:         args,
	})
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case statusOK:
		return nil, nil
	case statusError:
		return nil, &Error{Op: op, Message: res.Message}
	case statusTestFailed:
		code := -1
		if res.ExitCode != nil {
			code = *res.ExitCode
		}
		return &TestFailure{Message: res.Message, ExitCode: code}, nil
	default:
		return nil, fmt.Errorf("engine reported unexpected result %q for %s", res.Status, op)
	}
}

func (p *Process) invoke(ctx context.Context, sh *shell.Shell, env envelope) (*event, error) {
	if sh == nil {
		sh = shell.New(io.Discard, io.Discard, shell.Config{Color: shell.ColorNever})
	}
	command := strings.TrimSpace(p.Command)
	if command == "" {
		return nil, errors.New("no engine command configured")
	}

	root := manifest.Dir(env.ManifestPath)
	if env.Op != OpUpdate {
		lock, err := lockBuildDir(ctx, root, sh, p.LockPoll)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				p.Logger.Warn("failed to release build directory lock", "error", err)
			}
		}()
	}

	env.RequestID = uuid.NewString()
	env.Verbose = sh.IsVerbose()
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode engine request: %w", err)
	}

	logger := p.Logger.With("op", env.Op, "request_id", env.RequestID)
	logger.Debug("engine request", "command", command, "manifest_path", env.ManifestPath)

	cmd := exec.CommandContext(ctx, command, env.Op)
	cmd.Dir = root
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stderr = sh.Err()
	cmd.Env = append(os.Environ(), RequestIDEnv+"="+env.RequestID)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("could not execute engine `%s`: %w", command, err)
	}

	result, readErr := relayEvents(stdout, sh)
	waitErr := cmd.Wait()
	logger.Debug("engine finished", "has_result", result != nil, "wait_error", waitErr)

	if result != nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if waitErr != nil {
		return nil, describeExit(command, waitErr)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read engine output: %w", readErr)
	}
	return nil, fmt.Errorf("engine `%s` exited without reporting a result", command)
}

// relayEvents forwards engine events to sh until stdout closes and returns
// the last result event seen. Lines have no length limit.
func relayEvents(r io.Reader, sh *shell.Shell) (*event, error) {
	var result *event
	out := sh.Out()
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			if ev := relayLine(bytes.TrimRight(line, "\r\n"), sh, out); ev != nil {
				result = ev
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return result, nil
			}
			_, _ = io.Copy(io.Discard, r)
			return result, err
		}
	}
}

// relayLine handles one line of engine stdout and returns it when it is the
// result event.
func relayLine(line []byte, sh *shell.Shell, out io.Writer) *event {
	var ev event
	if len(bytes.TrimSpace(line)) == 0 || line[0] != '{' || json.Unmarshal(line, &ev) != nil || ev.Kind == "" {
		_, _ = out.Write(append(line, '\n'))
		return nil
	}
	switch ev.Kind {
	case "status":
		sh.Status(ev.Verb, ev.Message)
	case "warning":
		sh.Warn(ev.Message)
	case "error":
		sh.Error(ev.Message)
	case "note":
		sh.Note(ev.Message)
	case "verbose":
		sh.Verbose(func(s *shell.Shell) {
			if ev.Verb != "" {
				s.Status(ev.Verb, ev.Message)
				return
			}
			s.Note(ev.Message)
		})
	case "result":
		return &ev
	default:
		_, _ = out.Write(append(line, '\n'))
	}
	return nil
}

func describeExit(command string, err error) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("engine `%s` failed: %w", command, err)
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return fmt.Errorf("engine `%s` terminated by signal %s", command, unix.SignalName(status.Signal()))
	}
	return fmt.Errorf("engine `%s` exited with status %d without reporting a result", command, exitErr.ExitCode())
}
