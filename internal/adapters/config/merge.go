package config

import (
	"fmt"
	"sort"

	"github.com/chorehq/chore/internal/core/domain"
	"go.trai.ch/zerr"
)

// deepMerge merges src on top of dst, recursing into mappings. Non-mapping
// values from src replace the value in dst. Merging a mapping with a
// non-mapping is an error: that shape mismatch is always a config mistake,
// never an intended override.
func deepMerge(dst, src map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for _, k := range sortedKeys(src) {
		sv := src[k]
		dv, present := out[k]
		if !present || dv == nil || sv == nil {
			out[k] = sv
			continue
		}

		dm, dstIsMap := dv.(map[string]any)
		sm, srcIsMap := sv.(map[string]any)
		switch {
		case dstIsMap && srcIsMap:
			merged, err := deepMerge(dm, sm)
			if err != nil {
				return nil, zerr.With(err, "key", k)
			}
			out[k] = merged
		case dstIsMap != srcIsMap:
			return nil, zerr.With(
				zerr.Wrap(domain.ErrConfigMerge, fmt.Sprintf("cannot merge %T with %T", dv, sv)),
				"key", k,
			)
		default:
			out[k] = sv
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
