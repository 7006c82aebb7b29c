package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a user-supplied color mode. Empty means auto.
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("argument for --color must be auto, always, or never, but found `%s`", value)
	}
}

// Config controls what a Shell prints and how.
type Config struct {
	Verbose bool
	Quiet   bool
	Color   ColorMode
}

// statusWidth is the column the status verb is right-aligned to.
const statusWidth = 12

// Shell serializes diagnostic output for one invocation.
type Shell struct {
	mu  *sync.Mutex
	out io.Writer
	err io.Writer
	cfg Config

	colorize bool
}

// New returns a shell writing normal output to out and diagnostics to err.
func New(out, err io.Writer, cfg Config) *Shell {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}
	s := &Shell{mu: &sync.Mutex{}, out: out, err: err}
	s.configure(cfg)
	return s
}

// Default returns a shell bound to the process's stdout and stderr.
func Default(cfg Config) *Shell {
	return New(os.Stdout, os.Stderr, cfg)
}

// With returns a shell sharing this shell's writers and write lock but using
// cfg.
func (s *Shell) With(cfg Config) *Shell {
	clone := &Shell{mu: s.mu, out: s.out, err: s.err}
	clone.configure(cfg)
	return clone
}

func (s *Shell) configure(cfg Config) {
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	s.cfg = cfg
	switch cfg.Color {
	case ColorAlways:
		s.colorize = true
	case ColorNever:
		s.colorize = false
	default:
		s.colorize = shouldColorize(s.err)
	}
}

// Config reports the shell's configuration.
func (s *Shell) Config() Config { return s.cfg }

// IsVerbose reports whether verbose output is enabled.
func (s *Shell) IsVerbose() bool { return s.cfg.Verbose && !s.cfg.Quiet }

// Status prints a right-aligned green verb followed by msg, e.g.
// "   Compiling foo v0.1.0".
func (s *Shell) Status(verb, msg string) {
	if s.cfg.Quiet {
		return
	}
	label := fmt.Sprintf("%*s", statusWidth, verb)
	s.printErr(s.paint(label, color.FgGreen, color.Bold), msg)
}

// Warn prints "warning: msg".
func (s *Shell) Warn(msg string) {
	s.printErr(s.paint("warning", color.FgYellow, color.Bold)+":", msg)
}

// Error prints "error: msg".
func (s *Shell) Error(msg string) {
	s.printErr(s.paint("error", color.FgRed, color.Bold)+":", msg)
}

// Note prints "note: msg". Suppressed when quiet.
func (s *Shell) Note(msg string) {
	if s.cfg.Quiet {
		return
	}
	s.printErr(s.paint("note", color.FgCyan, color.Bold)+":", msg)
}

// Verbose runs fn only when verbose output is enabled.
func (s *Shell) Verbose(fn func(*Shell)) {
	if s.IsVerbose() {
		fn(s)
	}
}

// Out returns a writer for normal program output. Writes hold the shell lock.
func (s *Shell) Out() io.Writer { return lockedWriter{mu: s.mu, w: s.out} }

// Err returns a writer for diagnostic output. Writes hold the shell lock.
func (s *Shell) Err() io.Writer { return lockedWriter{mu: s.mu, w: s.err} }

func (s *Shell) printErr(label, msg string) {
	line := label
	if msg = strings.TrimRight(msg, "\n"); msg != "" {
		line += " " + msg
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.err, line)
}

func (s *Shell) paint(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if s.colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
