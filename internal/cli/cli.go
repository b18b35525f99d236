// Package cli provides command-line interface functionality for westcheck.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/logging"
	"github.com/AndreyAkinshin/westcheck/internal/output"
)

// Version is set at build time.
var Version = "dev"

// exitError carries the exit code of a run whose failures were already
// printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitSuccess
	}

	var ee *exitError
	if stderrors.As(err, &ee) {
		return ee.code
	}

	out := output.NewWithWriters(stdout, stderr, false)
	out.ErrorPrefix("%v", err)

	var we *errors.Error
	if stderrors.As(err, &we) {
		return we.ExitCode()
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.ExitFailure
	}
	// Anything else comes from argument parsing.
	out.Errorln("Run 'westcheck --help' for usage.")
	return errors.ExitConfigError
}

// newWriter returns an output writer bound to the command's streams.
// Colour is only used when writing to the process stdout.
func newWriter(cmd *cobra.Command, opts *RootOptions) *output.Writer {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var w *output.Writer
	if stdout == os.Stdout && stderr == os.Stderr {
		w = output.New()
	} else {
		w = output.NewWithWriters(stdout, stderr, false)
	}
	w.SetQuiet(opts.Quiet)
	return w
}

// newLogger returns the diagnostic logger. It writes warnings and above to
// stderr, or everything with --verbose.
func newLogger(cmd *cobra.Command, opts *RootOptions) logging.Logger {
	level := logging.LevelWarn
	if opts.Verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
}
