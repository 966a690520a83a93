package domain

// ValueTable is the named-value table: anchor name to deferred expression or
// plain value. Iteration order is the insertion order, which keeps resolution
// deterministic across runs.
type ValueTable struct {
	names  []string
	values map[string]any
}

// NewValueTable creates an empty table.
func NewValueTable() *ValueTable {
	return &ValueTable{values: make(map[string]any)}
}

// Set adds or replaces a named value.
func (t *ValueTable) Set(name string, v any) {
	if _, ok := t.values[name]; !ok {
		t.names = append(t.names, name)
	}
	t.values[name] = v
}

// Get looks up a named value.
func (t *ValueTable) Get(name string) (any, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Has reports whether the name is defined.
func (t *ValueTable) Has(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Names returns the defined names in insertion order.
func (t *ValueTable) Names() []string {
	return t.names
}

// Len returns the number of named values.
func (t *ValueTable) Len() int {
	return len(t.names)
}

// Document is the loaded configuration: the project-level settings, the
// named-value table built from the global env block, the plugin blocks and
// the job table. Values typed `any` hold either a resolved Go scalar or an
// Expr still to be resolved.
type Document struct {
	// Path is the absolute path of the configuration file.
	Path string

	// Home is the project home directory (default "."). May be an Expr.
	Home any

	// Tmp is the project scratch directory (default "./tmp"). May be an Expr.
	Tmp any

	// Venv is the project virtual-environment directory, consumed by the
	// python plugin when its own venv option is unset. May be an Expr.
	Venv any

	// Env is the named-value table from the top-level env block.
	Env *ValueTable

	// Plugins maps plugin identifier to its configuration block.
	Plugins map[string]*PluginSpec

	// Jobs maps job identifier to its definition.
	Jobs map[string]*JobSpec
}

// PluginSpec is a plugin's configuration block.
type PluginSpec struct {
	Name string

	// Autoload loads the plugin at start-up instead of on first reference.
	Autoload bool

	// Options holds the plugin-specific keys; values may be Expr.
	Options map[string]any
}

// JobSpec is a job definition as loaded from configuration. Constructed once
// at load time and immutable afterwards; the graph and the executor hold
// references, never copies.
type JobSpec struct {
	Name string

	// Help is the one-line description. May be an Expr.
	Help any

	// Run is the ordered task list. Each entry is a command string or an
	// Expr resolving to one. An entry containing newlines is a block whose
	// lines share a single subprocess.
	Run []any

	// After lists predecessor identifiers: job names or plugin lifecycle
	// references (plugin:X, unplug:X).
	After []string

	// Env holds per-job environment overrides, resolved against the
	// composed scope at execution time.
	Env *ValueTable

	// Home overrides the working directory for this job. May be an Expr.
	Home any

	// Skip bypasses the job's tasks when it resolves true, unless the force
	// override is active. May be an Expr (typically a shell predicate).
	Skip any

	// Confirm, when set, prompts before running; declining aborts the
	// remaining sequence.
	Confirm string

	// Interactive leaves the task's stdio attached to the terminal.
	Interactive bool

	// Capture collects task output instead of streaming it.
	Capture bool

	// Silent suppresses per-task status lines.
	Silent bool

	// Lock runs the job's tasks under the cross-invocation project lock.
	Lock bool

	// Sleep is a delay in seconds applied after the tasks succeed.
	Sleep int

	// Open lists URIs to open after the tasks succeed. Entries may be Expr.
	Open []any
}
