// Package run executes external commands on behalf of the release tool.
//
// All collaborators (git, sbt, ssh, rsync) are invoked through the Runner
// interface so higher-level packages can be tested without the real tools
// installed. Commands honor context cancellation: a cancelled context
// kills the in-flight process.
package run

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/logging"
)

// Runner executes external commands
type Runner interface {
	// Run executes a command in dir, streaming its output, and returns
	// an error if the command exits non-zero.
	Run(ctx context.Context, dir string, name string, args ...string) error
	// Output executes a command in dir and returns its standard output.
	Output(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Stdout io.Writer // Defaults to os.Stdout
	Stderr io.Writer // Defaults to os.Stderr
	Env    []string  // Extra environment entries appended to os.Environ()
}

// NewExecRunner creates a runner wired to the process streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *ExecRunner) command(ctx context.Context, dir string, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

// Run executes a command, streaming output to the configured writers
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := r.command(ctx, dir, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.New(name, fmt.Errorf("command cancelled: %w", ctx.Err()))
		}
		return errors.New(name, fmt.Errorf("command failed: %w", err))
	}
	return nil
}

// Output executes a command and returns its trimmed standard output.
// Standard error is captured and folded into the returned error on failure.
func (r *ExecRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	logging.LogCommand(name, args)

	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, dir, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", errors.New(name, fmt.Errorf("command cancelled: %w", ctx.Err()))
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", errors.New(name, fmt.Errorf("command failed: %s: %w", msg, err))
		}
		return "", errors.New(name, fmt.Errorf("command failed: %w", err))
	}
	return strings.TrimSpace(stdout.String()), nil
}
