package ports

// Console is the human-facing output and prompt surface: per-node status
// lines during a run and the yes/no and free-form prompts used by
// confirmations and plugins.
//
//go:generate go run go.uber.org/mock/mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks
type Console interface {
	// Running reports that a node started.
	Running(id string)
	// Finished reports that a node's tasks completed.
	Finished(id string)
	// Skipped reports that a node was bypassed by its skip predicate.
	Skipped(id string)
	// Declined reports that the run stopped at a node whose confirmation
	// was answered no.
	Declined(id string)
	// Task prints a task line about to run.
	Task(line string)
	// Errorf prints a failure description.
	Errorf(format string, args ...any)

	// Confirm asks a yes/no question and reports the answer.
	Confirm(msg string) (bool, error)
	// Ask prompts for a line of input.
	Ask(msg string) (string, error)
}
