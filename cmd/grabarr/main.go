// Package main is the entrypoint of grabarr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"grabarr/internal/cfg"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
)

// exitError carries a process exit code out of a command handler.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// main is the main entrypoint of the program (duh!).
func main() {
	os.Exit(run())
}

func run() int {
	// create cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer cancel()

	a := newApplication()
	defer a.cleanup()

	rootCmd := cfg.NewRootCommand(cfg.Handlers{
		Download: a.download,
		Serve:    a.serve,
		History:  a.history,
	})

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return consts.ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			logger.Pl.E("Error: %v", ee.err)
		}
		return ee.code
	}

	// Configuration errors can happen before logging is set up.
	fmt.Fprintf(os.Stderr, "%s: %v\n", consts.ProgramName, err)
	fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", consts.ProgramName)
	return consts.ExitConfigError
}
