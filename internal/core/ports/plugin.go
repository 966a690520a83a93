package ports

import (
	"context"

	"github.com/chorehq/chore/internal/core/domain"
)

// PluginRequest carries a plugin's resolved configuration block and the
// project context it loads into.
type PluginRequest struct {
	// Options are the plugin-specific configuration keys, expressions
	// already resolved.
	Options map[string]any

	// Env is the composed environment at the moment of the lifecycle call.
	Env map[string]string

	// Home is the resolved project home directory.
	Home string

	// Tmp is the project scratch directory.
	Tmp string
}

// Plugin is a loadable unit contributing environment state. Load returns the
// variables to merge into the scope; Unload reverses only that bookkeeping.
type Plugin interface {
	// Key is the identifier the configuration and dependency lists use.
	Key() string

	// Help is a one-line description for listings.
	Help() string

	// Load performs the plugin's setup and returns its environment
	// contributions.
	Load(ctx context.Context, req PluginRequest) (map[string]string, error)

	// Unload tears down what Load set up outside the environment; the scope
	// bookkeeping itself is the caller's job.
	Unload(ctx context.Context, req PluginRequest) error
}

// PluginHost tracks configured plugins and their load state for an
// invocation. The execution engine drives it when plugin:X / unplug:X nodes
// are reached.
//
//go:generate go run go.uber.org/mock/mockgen -source=plugin.go -destination=mocks/mock_plugin.go -package=mocks
type PluginHost interface {
	// Has reports whether the plugin is configured for this project.
	Has(name string) bool

	// Loaded reports whether the plugin has loaded this invocation.
	Loaded(name string) bool

	// Load runs the plugin's load hook at most once per invocation and
	// pushes its contributions onto the scope. Idempotent.
	Load(ctx context.Context, name string, scope *domain.Scope) error

	// Unload runs the unload hook and drops the plugin's scope layer.
	Unload(ctx context.Context, name string, scope *domain.Scope) error
}
