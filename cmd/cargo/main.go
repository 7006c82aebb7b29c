package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/LexxFedoroff/cargo/internal/outcome"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, defaultEngineFactory))
}

// run executes one invocation and returns the process exit code.
func run(parent context.Context, args []string, stdout, stderr io.Writer, newEngine engineFactory) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cctx := newCommandContext(newEngine)
	cmd := newRootCommand(cctx)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	report := outcome.Resolve(cmd.ExecuteContext(ctx))
	if report.Message != "" {
		cctx.baseShell(stdout, stderr).Error(report.Message)
	}
	if help := strings.TrimSpace(report.Help); help != "" {
		fmt.Fprintf(stderr, "\n%s\n", help)
	}
	return report.Code
}
