// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// =============================================================================
// Types
// =============================================================================

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
}

// String renders the command line for logs. Secret arguments must be
// masked by the caller's log pipeline.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs a command to completion.
//
// A process that starts and exits non-zero is not an error: the exit code is
// reported in Result. Errors are reserved for processes that could not be
// started at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// =============================================================================
// Exec Runner
// =============================================================================

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	stdout io.Writer // live copy of stdout, may be nil
	stderr io.Writer // live copy of stderr, may be nil
	logger *slog.Logger
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithConsole streams process output to the given writers while capturing it.
func WithConsole(stdout, stderr io.Writer) Option {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner creates a runner for real processes.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to find %s: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = tee(&stdoutBuf, r.stdout)
	cmd.Stderr = tee(&stderrBuf, r.stderr)

	r.logger.Debug("executing command", "command", c.Name, "args", len(c.Args))

	err = cmd.Run()
	result := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
		return result, fmt.Errorf("failed to run %s: %w", c.Name, err)
	}

	r.logger.Debug("command finished", "command", c.Name, "exit_code", result.ExitCode)
	return result, nil
}

func tee(buf *bytes.Buffer, live io.Writer) io.Writer {
	if live == nil {
		return buf
	}
	return io.MultiWriter(buf, live)
}
