// Package toolrunner executes the external tools some generators delegate to
// (npx, npm, bun, git).
//
// Usage:
//
//	runner := toolrunner.NewRunner(os.Stdout)
//	_, err := runner.Run(ctx, dir, "npx", "shadcn@latest", "add", "button", "-y")
package toolrunner

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/pixie-sh/errors-go"
)

// Runner executes a command in a working directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (*CommandResult, error)
}

// CommandResult is the outcome of one command execution.
type CommandResult struct {
	ExitCode int
	Duration time.Duration
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	out io.Writer
}

// NewRunner creates a runner that streams stdout and stderr to out.
func NewRunner(out io.Writer) *ExecRunner {
	return &ExecRunner{out: out}
}

// Run executes name with args in dir and waits for it. The process is killed
// when ctx is cancelled.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (*CommandResult, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.out
	cmd.Stderr = r.out

	slog.Debug("running tool", "dir", dir, "cmd", name+" "+strings.Join(args, " "))

	err := cmd.Run()
	result := &CommandResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}
	if err != nil {
		return result, errors.Wrap(err, "command failed: %s %s", name, strings.Join(args, " "))
	}

	return result, nil
}

// LookPath reports whether name is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
