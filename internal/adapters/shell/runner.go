// Package shell provides the subprocess execution adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/chorehq/chore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Shell by handing command lines to /bin/sh. The
// shell performs run-time ${name} resolution against the environment it is
// given, which is the second half of the two-phase variable resolution.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the command line to completion. A non-zero exit status is
// reported in the result, not as an error; an error means the process could
// not be spawned.
func (r *Runner) Run(ctx context.Context, c ports.ShellCommand) (ports.ShellResult, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", c.Line) //nolint:gosec // running user commands is the point
	cmd.Env = c.Env
	if c.Dir != "" {
		if st, err := os.Stat(c.Dir); err == nil && st.IsDir() {
			cmd.Dir = c.Dir
		}
	}

	var stdout bytes.Buffer
	switch {
	case c.Capture:
		cmd.Stdout = &stdout
		cmd.Stderr = &logWriter{logger: r.logger, level: "error"}
	case c.Interactive:
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	default:
		cmd.Stdout = &logWriter{logger: r.logger, level: "info"}
		cmd.Stderr = &logWriter{logger: r.logger, level: "error"}
	}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ports.ShellResult{ExitCode: exitErr.ExitCode(), Stdout: stdout.String()}, nil
		}
		return ports.ShellResult{ExitCode: -1}, zerr.With(zerr.Wrap(err, "failed to spawn command"), "command", c.Line)
	}

	return ports.ShellResult{ExitCode: 0, Stdout: stdout.String()}, nil
}

// logWriter forwards subprocess output to the logger line by line.
type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (int, error) {
	for line := range strings.SplitSeq(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
