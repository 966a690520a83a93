// Package app implements the application layer for chore: load the
// document, compose the scope, schedule the targets and hand the sequence
// to the execution engine.
package app

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"github.com/chorehq/chore/internal/engine/executor"
	"github.com/chorehq/chore/internal/engine/scheduler"
	"github.com/chorehq/chore/internal/plugins"
	"go.trai.ch/zerr"
)

// DefaultConfigFile is the document loaded when -c is not given.
const DefaultConfigFile = "chore.yaml"

// App wires the loader, the engine and the plugin layer together.
type App struct {
	loader    ports.ConfigLoader
	scheduler *scheduler.Scheduler
	executor  *executor.Executor
	eval      *evaluator.Evaluator
	registry  *plugins.Registry
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	exec *executor.Executor,
	eval *evaluator.Evaluator,
	registry *plugins.Registry,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		scheduler: sched,
		executor:  exec,
		eval:      eval,
		registry:  registry,
		logger:    logger,
	}
}

// RunOptions is the per-invocation configuration from the command line.
type RunOptions struct {
	// ConfigPath is the document to load; empty means DefaultConfigFile.
	ConfigPath string

	// EnvOverrides are -e KEY:value pairs, the highest-precedence layer.
	EnvOverrides map[string]string

	// PluginOverrides are -p name:on|off pairs overriding configured
	// autoload flags.
	PluginOverrides map[string]bool

	// Force disables skip predicates.
	Force bool
}

// Run executes the named jobs with everything they depend on.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) error {
	env, err := a.assemble(ctx, opts)
	if err != nil {
		return err
	}

	seq, err := a.scheduler.Build(env.doc, targets)
	if err != nil {
		return err
	}

	return a.executor.Run(ctx, executor.RunParams{
		Doc:      env.doc,
		Sequence: append(env.autoload, seq...),
		Scope:    env.scope,
		Host:     env.host,
		Home:     env.home,
		Force:    opts.Force,
	})
}

// JobInfo is one entry of the job listing.
type JobInfo struct {
	Name string
	Help string
}

// Jobs loads the document and returns the defined jobs with their resolved
// help lines, sorted by name.
func (a *App) Jobs(ctx context.Context, opts RunOptions) ([]JobInfo, error) {
	env, err := a.assemble(ctx, opts)
	if err != nil {
		return nil, err
	}

	out := make([]JobInfo, 0, len(env.doc.Jobs))
	for _, job := range env.doc.Jobs {
		help, err := a.eval.Eval(ctx, job.Help, env.scope, env.home)
		if err != nil {
			return nil, zerr.With(err, "job", job.Name)
		}
		out = append(out, JobInfo{Name: job.Name, Help: help})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// PluginInfo is one entry of the plugin listing.
type PluginInfo struct {
	Name string
	Help string
}

// Plugins returns the available plugin implementations.
func (a *App) Plugins() []PluginInfo {
	all := a.registry.All()
	out := make([]PluginInfo, 0, len(all))
	for _, p := range all {
		out = append(out, PluginInfo{Name: p.Key(), Help: p.Help()})
	}
	return out
}

// environment is the assembled per-invocation state.
type environment struct {
	doc      *domain.Document
	scope    *domain.Scope
	host     *plugins.Host
	home     string
	autoload []domain.InternedString
}

// assemble loads the document and builds the composed scope: process
// environment at the bottom, the resolved global env block on top of it,
// command-line overrides above everything.
func (a *App) assemble(ctx context.Context, opts RunOptions) (*environment, error) {
	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigFile
	}

	doc, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	scope := domain.NewScope(a.eval.Builtins(), processEnv(), opts.EnvOverrides)

	base := filepath.Dir(doc.Path)
	home, err := a.resolveDir(ctx, doc.Home, scope, base)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project home")
	}
	tmp, err := a.resolveDir(ctx, doc.Tmp, scope, home)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve scratch directory")
	}

	resolved, err := a.eval.ResolveTable(ctx, doc.Env, scope, home)
	if err != nil {
		return nil, err
	}
	for k, v := range resolved {
		scope.Set(k, v)
	}

	return &environment{
		doc:      doc,
		scope:    scope,
		host:     plugins.NewHost(a.registry, doc, a.eval, a.logger, home, tmp),
		home:     home,
		autoload: a.autoloadNodes(doc, opts.PluginOverrides),
	}, nil
}

func (a *App) resolveDir(ctx context.Context, v any, scope *domain.Scope, base string) (string, error) {
	raw, err := a.eval.Eval(ctx, v, scope, base)
	if err != nil {
		return "", err
	}
	return evaluator.NormalizePath(raw, base), nil
}

// autoloadNodes lists the plugin load nodes to run before the scheduled
// sequence: every plugin marked autoload, minus -p overrides. Sorted by
// name so repeated invocations load in the same order.
func (a *App) autoloadNodes(doc *domain.Document, overrides map[string]bool) []domain.InternedString {
	names := make([]string, 0, len(doc.Plugins))
	for name := range doc.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	var nodes []domain.InternedString
	for _, name := range names {
		enabled := doc.Plugins[name].Autoload
		if ov, ok := overrides[name]; ok {
			enabled = ov
		}
		if enabled {
			nodes = append(nodes, domain.Intern("plugin:"+name))
		}
	}
	return nodes
}

func processEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
