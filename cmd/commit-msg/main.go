// Package main is the entry point for the commit-msg hook.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relicta-tech/commit-msg/internal/cli"
)

// Version information set by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	opts := cli.NewOptions()
	opts.SetVersion(version, commit, date)

	execute := func(ctx context.Context) error {
		return cli.ExecuteContext(ctx, opts)
	}

	os.Exit(run(context.Background(), sigChan, execute, opts.Cleanup, os.Stderr, os.Exit))
}

// run executes the CLI and returns the process exit status. A first signal
// cancels the context; a second one, or the shutdown timeout, calls exit(1).
func run(parent context.Context, sigChan <-chan os.Signal, execute func(context.Context) error, cleanup func(), stderr io.Writer, exit func(int)) int {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	if sigChan != nil {
		go func() {
			var sig os.Signal
			select {
			case sig = <-sigChan:
			case <-done:
				return
			}
			fmt.Fprintf(stderr, "\nReceived signal %v, initiating graceful shutdown...\n", sig)
			cancel()

			shutdownTimer := time.NewTimer(shutdownTimeout)
			defer shutdownTimer.Stop()

			select {
			case <-done:
			case <-shutdownTimer.C:
				fmt.Fprintf(stderr, "\nShutdown timeout (%v) exceeded, forcing exit\n", shutdownTimeout)
				exit(1)
			case sig = <-sigChan:
				fmt.Fprintf(stderr, "\nReceived second signal %v, forcing exit\n", sig)
				exit(1)
			}
		}()
	}

	err := execute(ctx)
	cleanup()

	if err == nil {
		return cli.ExitOK
	}

	if ctx.Err() != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(stderr, "Operation canceled")
		}
		return cli.ExitCanceled
	}

	// Diagnostics for rejected messages are printed by the command itself.
	if !cli.IsReported(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}
