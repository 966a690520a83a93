// Package plugins ships the built-in plugins and the host that drives their
// lifecycle during a run.
package plugins

import (
	"sort"

	"github.com/chorehq/chore/internal/core/ports"
)

// Registry holds the available plugin implementations by key.
type Registry struct {
	plugins map[string]ports.Plugin
}

// NewRegistry creates a registry over the given plugins.
func NewRegistry(ps ...ports.Plugin) *Registry {
	r := &Registry{plugins: make(map[string]ports.Plugin, len(ps))}
	for _, p := range ps {
		r.plugins[p.Key()] = p
	}
	return r
}

// Get looks a plugin up by key.
func (r *Registry) Get(key string) (ports.Plugin, bool) {
	p, ok := r.plugins[key]
	return p, ok
}

// All returns the plugins sorted by key, for listings.
func (r *Registry) All() []ports.Plugin {
	keys := make([]string, 0, len(r.plugins))
	for k := range r.plugins {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ports.Plugin, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.plugins[k])
	}
	return out
}
