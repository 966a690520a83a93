// Package evaluator resolves deferred configuration expressions against the
// layered environment scope, in dependency order.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
)

// Builtin names available to expressions but never exported to spawned
// processes.
const (
	BuiltinDate = "__DATE__"
	BuiltinTime = "__TIME__"
)

// Evaluator resolves expressions. Shell probes are memoized by expression
// identity: one YAML anchor, one spawn, no matter how many aliases
// reference it.
type Evaluator struct {
	shell    ports.Shell
	logger   ports.Logger
	builtins map[string]string
	probes   map[domain.Expr]any
}

// New creates an Evaluator. The date and time builtins are stamped here,
// once, so every expression in a run sees the same instant.
func New(shell ports.Shell, logger ports.Logger, clock clockwork.Clock) *Evaluator {
	now := clock.Now()
	return &Evaluator{
		shell:  shell,
		logger: logger,
		builtins: map[string]string{
			BuiltinDate: now.Format("20060102"),
			BuiltinTime: now.Format("150405"),
		},
		probes: make(map[domain.Expr]any),
	}
}

// Builtins returns the builtin layer for scope construction.
func (e *Evaluator) Builtins() map[string]string {
	return e.builtins
}

// ResolveTable resolves every named value of a table and returns the result
// map. Values may reference each other through ${name}; resolution follows
// the reference order, so a name always sees the resolved form of the names
// it mentions. References between table members that form a cycle are fatal.
func (e *Evaluator) ResolveTable(ctx context.Context, table *domain.ValueTable, scope *domain.Scope, home string) (map[string]string, error) {
	if table == nil {
		return map[string]string{}, nil
	}
	order, err := tableOrder(table)
	if err != nil {
		return nil, err
	}

	r := &resolution{eval: e, scope: scope, local: make(map[string]string, table.Len()), home: home}
	for _, name := range order {
		v, _ := table.Get(name)
		s, err := r.resolveString(ctx, v)
		if err != nil {
			return nil, zerr.With(err, "name", name)
		}
		r.local[name] = s
	}
	return r.local, nil
}

// Eval resolves a single value to a string.
func (e *Evaluator) Eval(ctx context.Context, v any, scope *domain.Scope, home string) (string, error) {
	r := &resolution{eval: e, scope: scope, home: home}
	return r.resolveString(ctx, v)
}

// EvalBool resolves a value to a truth, for skip predicates. Plain strings
// are truthy unless empty, "false" or "0".
func (e *Evaluator) EvalBool(ctx context.Context, v any, scope *domain.Scope, home string) (bool, error) {
	r := &resolution{eval: e, scope: scope, home: home}
	res, err := r.resolve(ctx, v)
	if err != nil {
		return false, err
	}
	switch t := res.(type) {
	case bool:
		return t, nil
	case string:
		return t != "" && t != "false" && t != "0", nil
	case nil:
		return false, nil
	default:
		return true, nil
	}
}

// tableOrder topologically sorts a table by its internal ${name} references,
// keeping the table order as the tie-break.
func tableOrder(table *domain.ValueTable) ([]string, error) {
	names := table.Names()

	indegree := make(map[string]int, len(names))
	dependents := make(map[string][]string, len(names))
	for _, name := range names {
		indegree[name] += 0
		v, _ := table.Get(name)
		expr, ok := v.(domain.Expr)
		if !ok {
			continue
		}
		for _, ref := range domain.References(expr) {
			if ref == name || !table.Has(ref) {
				// Self-references and names outside the table resolve
				// through the surrounding scope, not the table.
				continue
			}
			indegree[name]++
			dependents[ref] = append(dependents[ref], name)
		}
	}

	var queue []string
	for _, name := range names {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(names))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, dep := range dependents[name] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) < len(names) {
		var stuck []string
		for _, name := range names {
			if indegree[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		return nil, zerr.With(domain.ErrCircularReference, "names", strings.Join(stuck, ", "))
	}
	return order, nil
}

// resolution is one resolve pass: the scope plus the partially resolved
// table of the pass, which earlier names of the same table resolve through.
type resolution struct {
	eval  *Evaluator
	scope *domain.Scope
	local map[string]string
	home  string
}

func (r *resolution) lookup(name string) (string, bool) {
	if v, ok := r.local[name]; ok {
		return v, true
	}
	return r.scope.Lookup(name)
}

// environ is the environment passed to shell probes: the composed scope with
// the already-resolved part of the current table layered on top.
func (r *resolution) environ() []string {
	return r.scope.Environ(r.local)
}

func (r *resolution) resolveString(ctx context.Context, v any) (string, error) {
	res, err := r.resolve(ctx, v)
	if err != nil {
		return "", err
	}
	return stringify(res), nil
}

//nolint:cyclop // one arm per expression variant
func (r *resolution) resolve(ctx context.Context, v any) (any, error) {
	switch t := v.(type) {
	case *domain.Literal:
		return t.Val, nil
	case *domain.EnvSubst:
		return r.substitute(t.Template), nil
	case *domain.ShellPredicate:
		return r.probe(ctx, t, func(res ports.ShellResult) any {
			return (res.ExitCode == 0) != t.Negate
		})
	case *domain.ShellCapture:
		return r.probe(ctx, t, func(res ports.ShellResult) any {
			if res.ExitCode != 0 {
				r.eval.logger.Warn(fmt.Sprintf("capture command exited with code %d: %s", res.ExitCode, t.Command))
			}
			return strings.TrimSpace(res.Stdout)
		})
	case *domain.Join:
		return r.joinParts(ctx, t.Parts, t.Sep)
	case *domain.PathJoin:
		return r.resolvePath(ctx, t.Parts)
	case *domain.URLJoin:
		joined, err := r.joinParts(ctx, t.Parts, "")
		if err != nil {
			return nil, err
		}
		if _, err := url.ParseRequestURI(joined); err != nil {
			return nil, zerr.With(errors.Join(domain.ErrExpressionEval, err), "url", joined)
		}
		return joined, nil
	case *domain.Exists:
		path, err := r.resolvePath(ctx, t.Parts)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(path)
		return (statErr == nil) != t.Negate, nil
	case domain.Expr:
		return nil, zerr.With(domain.ErrExpressionEval, "expr", fmt.Sprintf("%T", t))
	default:
		// Plain YAML scalar, already final.
		return t, nil
	}
}

// substitute expands ${name} placeholders through the scope. Names that do
// not resolve stay as written, deliberately: the spawned shell may know them.
func (r *resolution) substitute(template string) string {
	return domain.ExpandPlaceholders(template, r.lookup)
}

// probe runs a shell probe once per expression instance.
func (r *resolution) probe(ctx context.Context, key domain.Expr, pick func(ports.ShellResult) any) (any, error) {
	if v, ok := r.eval.probes[key]; ok {
		return v, nil
	}

	var command string
	switch t := key.(type) {
	case *domain.ShellPredicate:
		command = t.Command
	case *domain.ShellCapture:
		command = t.Command
	}

	res, err := r.eval.shell.Run(ctx, ports.ShellCommand{
		Line:    command,
		Dir:     r.home,
		Env:     r.environ(),
		Capture: true,
	})
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrExpressionEval, err), "command", command)
	}

	v := pick(res)
	r.eval.probes[key] = v
	return v, nil
}

func (r *resolution) joinParts(ctx context.Context, parts []domain.Expr, sep string) (string, error) {
	resolved := make([]string, 0, len(parts))
	for _, p := range parts {
		s, err := r.resolveString(ctx, p)
		if err != nil {
			return "", err
		}
		resolved = append(resolved, s)
	}
	return strings.Join(resolved, sep), nil
}

// resolvePath joins path segments and normalizes the result relative to the
// project home.
func (r *resolution) resolvePath(ctx context.Context, parts []domain.Expr) (string, error) {
	joined, err := r.joinParts(ctx, parts, "/")
	if err != nil {
		return "", err
	}
	return NormalizePath(joined, r.home), nil
}

// NormalizePath expands a leading ~, anchors relative paths at home and
// collapses any . and .. segments.
func NormalizePath(path, home string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if userHome, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(userHome, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) && home != "" {
		path = filepath.Join(home, path)
	}
	return filepath.Clean(path)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}
