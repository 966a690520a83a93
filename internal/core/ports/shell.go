// Package ports defines the core interfaces for the application.
package ports

import "context"

// ShellCommand describes a single subprocess run. Line is handed to the
// shell verbatim, so run-time ${name} references are resolved by the shell
// itself from Env.
type ShellCommand struct {
	// Line is the command text. A multi-line string runs as one subprocess,
	// sharing shell state across its lines.
	Line string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is the full environment in KEY=VALUE form.
	Env []string

	// Interactive attaches the subprocess to the caller's stdio.
	Interactive bool

	// Capture collects standard output instead of streaming it.
	Capture bool
}

// ShellResult is the outcome of a completed subprocess.
type ShellResult struct {
	// ExitCode is the subprocess exit status. Non-zero is not an error at
	// this layer; probes use it as their signal.
	ExitCode int

	// Stdout holds captured output when Capture was set.
	Stdout string
}

// Shell runs commands to completion. An error means the process could not
// be spawned at all (missing binary, permission denied), never that it
// exited non-zero.
//
//go:generate go run go.uber.org/mock/mockgen -source=shell.go -destination=mocks/mock_shell.go -package=mocks
type Shell interface {
	Run(ctx context.Context, cmd ShellCommand) (ShellResult, error)
}
