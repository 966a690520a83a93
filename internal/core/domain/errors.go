package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigSyntax is returned when the configuration document is malformed.
	ErrConfigSyntax = errors.New("invalid configuration syntax")

	// ErrConfigNotFound is returned when a configuration or included file does not resolve.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigMerge is returned when an include merges incompatible types.
	ErrConfigMerge = errors.New("cannot merge incompatible configuration values")

	// ErrUnknownJob is returned when a job references a predecessor job that is not defined.
	ErrUnknownJob = errors.New("unknown job")

	// ErrUnknownPlugin is returned when a job references a plugin that is not configured.
	ErrUnknownPlugin = errors.New("unknown plugin")

	// ErrCircularReference is returned when named expressions reference each other in a cycle.
	ErrCircularReference = errors.New("circular reference between named values")

	// ErrCircularDependency is returned when the job graph contains a cycle.
	ErrCircularDependency = errors.New("circular job dependency")

	// ErrExpressionEval is returned when a shell probe cannot be spawned at all.
	// A probe that runs and exits non-zero is not an error; this is.
	ErrExpressionEval = errors.New("expression evaluation failed")

	// ErrTaskExecution is returned when a job task exits non-zero.
	ErrTaskExecution = errors.New("task exited non-zero")

	// ErrLockTimeout is returned when the project lock cannot be acquired in time.
	ErrLockTimeout = errors.New("another instance is running")

	// ErrConfirmationDeclined reports a declined confirmation prompt. It aborts
	// the remaining sequence but is a clean stop, not a failure.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrNodeAlreadyExists is returned when a node is added to a graph twice.
	ErrNodeAlreadyExists = errors.New("node already exists")

	// ErrInvalidJob is returned when a job definition fails load-time validation.
	ErrInvalidJob = errors.New("invalid job definition")
)

// ExitCode maps an error to the process exit code. Task failures propagate
// the failing task's exit code; configuration and graph errors share a
// distinct code; a declined confirmation is a clean zero.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrConfirmationDeclined) {
		return 0
	}
	if errors.Is(err, ErrTaskExecution) {
		if code, ok := metadataInt(err, "exit_code"); ok && code != 0 {
			return code
		}
		return 1
	}
	for _, sentinel := range []error{
		ErrConfigSyntax, ErrConfigNotFound, ErrConfigMerge,
		ErrUnknownJob, ErrUnknownPlugin, ErrInvalidJob,
		ErrCircularReference, ErrCircularDependency,
	} {
		if errors.Is(err, sentinel) {
			return 2
		}
	}
	return 1
}

// metadataInt walks the error chain looking for an integer metadata entry.
func metadataInt(err error, key string) (int, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		z, ok := e.(*zerr.Error)
		if !ok {
			continue
		}
		if v, ok := z.Metadata()[key].(int); ok {
			return v, true
		}
	}
	return 0, false
}
