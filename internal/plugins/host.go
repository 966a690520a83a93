package plugins

import (
	"context"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"go.trai.ch/zerr"
)

// Host implements ports.PluginHost for one loaded document. It resolves a
// plugin's option expressions at load time, pushes the contributions onto
// the scope and keeps what it needs to undo that on unload.
type Host struct {
	registry *Registry
	doc      *domain.Document
	eval     *evaluator.Evaluator
	logger   ports.Logger
	home     string
	tmp      string

	loaded   map[string]bool
	requests map[string]ports.PluginRequest
}

// NewHost creates a Host for the document.
func NewHost(registry *Registry, doc *domain.Document, eval *evaluator.Evaluator, logger ports.Logger, home, tmp string) *Host {
	return &Host{
		registry: registry,
		doc:      doc,
		eval:     eval,
		logger:   logger,
		home:     home,
		tmp:      tmp,
		loaded:   make(map[string]bool),
		requests: make(map[string]ports.PluginRequest),
	}
}

// Has reports whether the plugin is configured for this project.
func (h *Host) Has(name string) bool {
	_, ok := h.doc.Plugins[name]
	return ok
}

// Loaded reports whether the plugin has loaded this invocation.
func (h *Host) Loaded(name string) bool {
	return h.loaded[name]
}

// Load resolves the plugin's options, runs its load hook and layers the
// contributions onto the scope. Loading twice is a no-op.
func (h *Host) Load(ctx context.Context, name string, scope *domain.Scope) error {
	if h.loaded[name] {
		return nil
	}

	spec, ok := h.doc.Plugins[name]
	if !ok {
		return zerr.With(domain.ErrUnknownPlugin, "plugin", name)
	}
	plugin, ok := h.registry.Get(name)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnknownPlugin, "configured plugin has no implementation"), "plugin", name)
	}

	opts, err := h.resolveOptions(ctx, spec.Options, scope)
	if err != nil {
		return zerr.With(err, "plugin", name)
	}
	h.applyDefaults(ctx, name, opts, scope)

	req := ports.PluginRequest{
		Options: opts,
		Env:     scope.Flatten(nil),
		Home:    h.home,
		Tmp:     h.tmp,
	}

	vars, err := plugin.Load(ctx, req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "plugin load failed"), "plugin", name)
	}

	scope.PushPlugin(name, vars)
	h.loaded[name] = true
	h.requests[name] = req
	return nil
}

// Unload runs the unload hook and drops the plugin's scope layer. Unloading
// a plugin that never loaded is a no-op.
func (h *Host) Unload(ctx context.Context, name string, scope *domain.Scope) error {
	if !h.loaded[name] {
		return nil
	}
	plugin, ok := h.registry.Get(name)
	if !ok {
		return zerr.With(domain.ErrUnknownPlugin, "plugin", name)
	}

	if err := plugin.Unload(ctx, h.requests[name]); err != nil {
		return zerr.With(zerr.Wrap(err, "plugin unload failed"), "plugin", name)
	}

	scope.DropPlugin(name)
	h.loaded[name] = false
	delete(h.requests, name)
	return nil
}

// resolveOptions walks the option block and resolves every expression in it.
func (h *Host) resolveOptions(ctx context.Context, opts map[string]any, scope *domain.Scope) (map[string]any, error) {
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		resolved, err := h.resolveOption(ctx, v, scope)
		if err != nil {
			return nil, zerr.With(err, "option", k)
		}
		out[k] = resolved
	}
	return out, nil
}

func (h *Host) resolveOption(ctx context.Context, v any, scope *domain.Scope) (any, error) {
	switch t := v.(type) {
	case domain.Expr:
		return h.eval.Eval(ctx, t, scope, h.home)
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			r, err := h.resolveOption(ctx, e, scope)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	case map[string]any:
		return h.resolveOptions(ctx, t, scope)
	default:
		return t, nil
	}
}

// applyDefaults fills gaps in a plugin's options from document-level
// settings. Only the python plugin has one today: the top-level venv.
func (h *Host) applyDefaults(ctx context.Context, name string, opts map[string]any, scope *domain.Scope) {
	if name != pythonKey || opts["venv"] != nil || h.doc.Venv == nil {
		return
	}
	venv, err := h.eval.Eval(ctx, h.doc.Venv, scope, h.home)
	if err != nil {
		h.logger.Error(zerr.Wrap(err, "failed to resolve top-level venv"))
		return
	}
	opts["venv"] = venv
}
