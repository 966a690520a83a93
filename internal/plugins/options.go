package plugins

import (
	"fmt"
	"sort"
)

// environ renders an environment map in sorted KEY=VALUE form for spawns.
func environ(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// stringOption reads a scalar option, falling back when unset.
func stringOption(opts map[string]any, key, fallback string) string {
	v, ok := opts[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// stringsOption reads a list option; a scalar counts as a one-element list.
func stringsOption(opts map[string]any, key string, fallback []string) []string {
	v, ok := opts[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}

// mapOption reads a nested option block.
func mapOption(opts map[string]any, key string) map[string]any {
	if m, ok := opts[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
