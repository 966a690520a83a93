// Package config loads the project configuration document: YAML with a
// closed set of expression tags, recursive file inclusion with deep-merge
// semantics, and a load-time schema check for jobs and plugins.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	logger ports.Logger

	// decoded caches results by node identity so YAML anchors referenced
	// through multiple aliases share one Expr instance. Shell probes are
	// memoized by identity downstream, so this keeps an anchored probe to a
	// single spawn.
	decoded map[*yaml.Node]any
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load parses the document at path, follows include directives and returns
// the document with its named-value table.
func (l *Loader) Load(path string) (*domain.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve configuration path")
	}

	l.decoded = make(map[*yaml.Node]any)
	stack := map[string]bool{abs: true}

	tree, err := l.loadTree(abs, stack)
	if err != nil {
		return nil, err
	}

	return l.buildDocument(tree, abs)
}

// loadTree reads and decodes a single document into a plain tree, merging
// any top-level includes underneath it.
func (l *Loader) loadTree(path string, stack map[string]bool) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(errors.Join(domain.ErrConfigNotFound, err), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read configuration"), "path", path)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigSyntax, err), "path", path)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, zerr.With(domain.ErrConfigSyntax, "path", path)
	}

	base := filepath.Dir(path)
	v, err := l.decode(root.Content[0], base, stack)
	if err != nil {
		return nil, err
	}
	tree, ok := v.(map[string]any)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "document root must be a mapping"), "path", path)
	}

	return l.applyIncludes(tree, base, stack)
}

// applyIncludes merges the documents named by a top-level include key
// underneath the current tree. The including document wins on conflict.
func (l *Loader) applyIncludes(tree map[string]any, base string, stack map[string]bool) (map[string]any, error) {
	raw, ok := tree["include"]
	if !ok {
		return tree, nil
	}
	delete(tree, "include")

	entries, ok := raw.([]any)
	if !ok {
		entries = []any{raw}
	}

	merged := map[string]any{}
	for _, entry := range entries {
		var included map[string]any
		switch e := entry.(type) {
		case string:
			var err error
			if included, err = l.loadInclude(e, base, stack); err != nil {
				return nil, err
			}
		case map[string]any:
			// Already loaded through an !include tag.
			included = e
		default:
			return nil, zerr.Wrap(domain.ErrConfigSyntax, "include must name a document or list of documents")
		}
		var err error
		if merged, err = deepMerge(merged, included); err != nil {
			return nil, err
		}
	}
	return deepMerge(merged, tree)
}

// loadInclude resolves and loads one included document. A path is marked
// only while it is on the current inclusion chain, so two siblings may both
// include a shared base; only a genuine back-reference is a cycle.
func (l *Loader) loadInclude(path, base string, stack map[string]bool) (map[string]any, error) {
	p := expandHome(path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	p = filepath.Clean(p)

	if stack[p] {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "include cycle"), "path", p)
	}
	stack[p] = true
	defer delete(stack, p)

	return l.loadTree(p, stack)
}

// decode converts a YAML node into a plain Go tree, constructing Expr values
// for tagged nodes.
func (l *Loader) decode(n *yaml.Node, base string, stack map[string]bool) (any, error) {
	if n.Kind == yaml.AliasNode {
		return l.decode(n.Alias, base, stack)
	}
	if v, ok := l.decoded[n]; ok {
		return v, nil
	}

	v, handled, err := l.construct(n, base, stack)
	if err != nil {
		return nil, err
	}
	if !handled {
		switch n.Kind {
		case yaml.ScalarNode:
			v, err = decodeScalar(n)
		case yaml.SequenceNode:
			v, err = l.decodeSequence(n, base, stack)
		case yaml.MappingNode:
			v, err = l.decodeMapping(n, base, stack)
		default:
			err = zerr.With(domain.ErrConfigSyntax, "line", n.Line)
		}
		if err != nil {
			return nil, err
		}
	}

	l.decoded[n] = v
	return v, nil
}

func (l *Loader) decodeSequence(n *yaml.Node, base string, stack map[string]bool) ([]any, error) {
	out := make([]any, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := l.decode(c, base, stack)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (l *Loader) decodeMapping(n *yaml.Node, base string, stack map[string]bool) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "mapping keys must be scalars"), "line", key.Line)
		}
		v, err := l.decode(n.Content[i+1], base, stack)
		if err != nil {
			return nil, err
		}
		out[key.Value] = v
	}
	return out, nil
}

func decodeScalar(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, err.Error()), "line", n.Line)
	}
	return v, nil
}

// stringList accepts a scalar or a sequence of scalars.
func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, zerr.New("expected a string")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, zerr.New("expected a string or list of strings")
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
