package config

import (
	"github.com/chorehq/chore/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Expression tags understood by the loader. Every other custom tag is a
// syntax error.
const (
	tagEnv         = "!env"
	tagShellEq0    = "!shell_eq_0"
	tagShellNeq0   = "!shell_neq_0"
	tagShellStdout = "!shell_stdout"
	tagCat         = "!cat"
	tagCats        = "!cats"
	tagCatn        = "!catn"
	tagPath        = "!path"
	tagURL         = "!url"
	tagExists      = "!exists"
	tagNotExists   = "!not_exists"
	tagInclude     = "!include"
)

// construct builds the Expr for a tagged node. The second return reports
// whether the tag was handled at all.
func (l *Loader) construct(n *yaml.Node, base string, stack map[string]bool) (any, bool, error) {
	switch n.Tag {
	case tagEnv:
		s, err := scalarString(n)
		return &domain.EnvSubst{Template: s}, true, err
	case tagShellEq0:
		s, err := scalarString(n)
		return &domain.ShellPredicate{Command: s}, true, err
	case tagShellNeq0:
		s, err := scalarString(n)
		return &domain.ShellPredicate{Command: s, Negate: true}, true, err
	case tagShellStdout:
		s, err := scalarString(n)
		return &domain.ShellCapture{Command: s}, true, err
	case tagCat:
		parts, err := l.parts(n, base, stack)
		return &domain.Join{Parts: parts}, true, err
	case tagCats:
		parts, err := l.parts(n, base, stack)
		return &domain.Join{Parts: parts, Sep: " "}, true, err
	case tagCatn:
		parts, err := l.parts(n, base, stack)
		return &domain.Join{Parts: parts, Sep: "\n"}, true, err
	case tagPath:
		parts, err := l.joinParts(n, base, stack)
		return &domain.PathJoin{Parts: parts}, true, err
	case tagURL:
		parts, err := l.joinParts(n, base, stack)
		return &domain.URLJoin{Parts: parts}, true, err
	case tagExists:
		parts, err := l.joinParts(n, base, stack)
		return &domain.Exists{Parts: parts}, true, err
	case tagNotExists:
		parts, err := l.joinParts(n, base, stack)
		return &domain.Exists{Parts: parts, Negate: true}, true, err
	case tagInclude:
		s, err := scalarString(n)
		if err != nil {
			return nil, true, err
		}
		tree, err := l.loadInclude(s, base, stack)
		return tree, true, err
	default:
		return nil, false, nil
	}
}

// parts decodes the content of a tagged scalar or sequence into expression
// parts, wrapping plain values as literals.
func (l *Loader) parts(n *yaml.Node, base string, stack map[string]bool) ([]domain.Expr, error) {
	items := n.Content
	if n.Kind == yaml.ScalarNode {
		items = []*yaml.Node{cloneUntagged(n)}
	}

	out := make([]domain.Expr, 0, len(items))
	for _, item := range items {
		v, err := l.decode(item, base, stack)
		if err != nil {
			return nil, err
		}
		if e, ok := v.(domain.Expr); ok {
			out = append(out, e)
			continue
		}
		out = append(out, &domain.Literal{Val: v})
	}
	return out, nil
}

// joinParts is parts with the segment rules for paths and URLs: at least one
// segment, and the last one must not be an empty literal.
func (l *Loader) joinParts(n *yaml.Node, base string, stack map[string]bool) ([]domain.Expr, error) {
	parts, err := l.parts(n, base, stack)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "at least one path segment is required"), "line", n.Line)
	}
	if lit, ok := parts[len(parts)-1].(*domain.Literal); ok {
		if s, isStr := lit.Val.(string); isStr && s == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "last path segment must not be empty"), "line", n.Line)
		}
	}
	return parts, nil
}

func scalarString(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "expected a scalar value for tag "+n.Tag), "line", n.Line)
	}
	return n.Value, nil
}

// cloneUntagged strips the custom tag from a scalar so the underlying value
// decodes through the standard resolver.
func cloneUntagged(n *yaml.Node) *yaml.Node {
	c := *n
	c.Tag = ""
	c.Style = 0
	return &c
}
