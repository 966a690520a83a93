package domain

import "sort"

// Scope is the layered environment composition: builtins (date/time stamps)
// → global env block → plugin contributions (in load order) → per-job
// overrides → command-line overrides. A job's effective environment is read
// from the scope at the moment the job executes, so plugin loads earlier in
// the sequence are visible to later jobs.
//
// Builtins participate in lookups during expression resolution but are never
// exported to spawned processes.
type Scope struct {
	builtins  map[string]string
	global    map[string]string
	plugins   []pluginLayer
	overrides map[string]string
}

type pluginLayer struct {
	name string
	vars map[string]string
}

// NewScope creates a scope from the resolved global environment and the
// verbatim command-line overrides.
func NewScope(builtins, global, overrides map[string]string) *Scope {
	s := &Scope{
		builtins:  make(map[string]string, len(builtins)),
		global:    make(map[string]string, len(global)),
		overrides: make(map[string]string, len(overrides)),
	}
	for k, v := range builtins {
		s.builtins[k] = v
	}
	for k, v := range global {
		s.global[k] = v
	}
	for k, v := range overrides {
		s.overrides[k] = v
	}
	return s
}

// Set updates the global layer, e.g. when a resolved value is promoted into
// the environment.
func (s *Scope) Set(key, value string) {
	s.global[key] = value
}

// PushPlugin records a plugin's environment contributions as a new layer.
func (s *Scope) PushPlugin(name string, vars map[string]string) {
	layer := pluginLayer{name: name, vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		layer.vars[k] = v
	}
	s.plugins = append(s.plugins, layer)
}

// DropPlugin removes the named plugin's contribution layer. Processes
// already spawned while the plugin was loaded are unaffected.
func (s *Scope) DropPlugin(name string) {
	for i, layer := range s.plugins {
		if layer.name == name {
			s.plugins = append(s.plugins[:i], s.plugins[i+1:]...)
			return
		}
	}
}

// Lookup resolves a name through every layer, builtins included. Later
// layers win.
func (s *Scope) Lookup(name string) (string, bool) {
	if v, ok := s.overrides[name]; ok {
		return v, true
	}
	for i := len(s.plugins) - 1; i >= 0; i-- {
		if v, ok := s.plugins[i].vars[name]; ok {
			return v, true
		}
	}
	if v, ok := s.global[name]; ok {
		return v, true
	}
	if v, ok := s.builtins[name]; ok {
		return v, true
	}
	return "", false
}

// Flatten returns the composed environment as a map, excluding builtins.
// The job overlay sits between plugin contributions and the command-line
// overrides, which always apply last, verbatim.
func (s *Scope) Flatten(jobEnv map[string]string) map[string]string {
	out := make(map[string]string, len(s.global)+len(jobEnv)+len(s.overrides))
	for k, v := range s.global {
		out[k] = v
	}
	for _, layer := range s.plugins {
		for k, v := range layer.vars {
			out[k] = v
		}
	}
	for k, v := range jobEnv {
		out[k] = v
	}
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

// Environ renders the composed environment in KEY=VALUE form, sorted for
// deterministic subprocess spawns.
func (s *Scope) Environ(jobEnv map[string]string) []string {
	flat := s.Flatten(jobEnv)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+flat[k])
	}
	return out
}
