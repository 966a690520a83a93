package config

import (
	"fmt"

	"github.com/chorehq/chore/internal/core/domain"
	"go.trai.ch/zerr"
)

// Top-level keys with reserved meaning. "define" is an anchor scratchpad:
// values there exist only to be referenced through aliases elsewhere.
var reservedKeys = map[string]bool{
	"home":    true,
	"tmp":     true,
	"venv":    true,
	"env":     true,
	"plugins": true,
	"jobs":    true,
	"define":  true,
}

// buildDocument checks the merged tree against the document schema.
func (l *Loader) buildDocument(tree map[string]any, path string) (*domain.Document, error) {
	doc := &domain.Document{
		Path: path,
		Home: ".",
		Tmp:  "./tmp",
		Env:  domain.NewValueTable(),
	}

	if v, ok := tree["home"]; ok {
		doc.Home = v
	}
	if v, ok := tree["tmp"]; ok {
		doc.Tmp = v
	}
	if v, ok := tree["venv"]; ok {
		doc.Venv = v
	}

	if v, ok := tree["env"]; ok {
		env, err := valueTable(v, "env")
		if err != nil {
			return nil, err
		}
		doc.Env = env
	}

	var err error
	if doc.Plugins, err = l.buildPlugins(tree["plugins"]); err != nil {
		return nil, err
	}
	if doc.Jobs, err = l.buildJobs(tree["jobs"]); err != nil {
		return nil, err
	}

	for _, k := range sortedKeys(tree) {
		if !reservedKeys[k] {
			l.logger.Warn(fmt.Sprintf("ignoring unknown configuration key %q", k))
		}
	}
	return doc, nil
}

func (l *Loader) buildPlugins(v any) (map[string]*domain.PluginSpec, error) {
	plugins := make(map[string]*domain.PluginSpec)
	if v == nil {
		return plugins, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrConfigSyntax, "plugins must be a mapping")
	}

	for _, name := range sortedKeys(m) {
		spec := &domain.PluginSpec{Name: name, Options: map[string]any{}}
		block := m[name]
		if block != nil {
			opts, ok := block.(map[string]any)
			if !ok {
				return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "plugin block must be a mapping"), "plugin", name)
			}
			for k, ov := range opts {
				if k == "autoload" {
					b, err := boolValue(ov, name, k)
					if err != nil {
						return nil, err
					}
					spec.Autoload = b
					continue
				}
				spec.Options[k] = ov
			}
		}
		plugins[name] = spec
	}
	return plugins, nil
}

func (l *Loader) buildJobs(v any) (map[string]*domain.JobSpec, error) {
	jobs := make(map[string]*domain.JobSpec)
	if v == nil {
		return jobs, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrConfigSyntax, "jobs must be a mapping")
	}

	for _, name := range sortedKeys(m) {
		job, err := l.buildJob(name, m[name])
		if err != nil {
			return nil, err
		}
		jobs[name] = job
	}
	return jobs, nil
}

func (l *Loader) buildJob(name string, v any) (*domain.JobSpec, error) {
	block, ok := v.(map[string]any)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigSyntax, "job definition must be a mapping"), "job", name)
	}

	job := &domain.JobSpec{
		Name: name,
		Help: "No help available.",
		Env:  domain.NewValueTable(),
	}

	for _, key := range sortedKeys(block) {
		val := block[key]
		var err error
		switch key {
		case "run", "command":
			job.Run = anyList(val)
		case "after", "depends":
			job.After, err = stringList(val)
			if err != nil {
				err = zerr.Wrap(domain.ErrConfigSyntax, "after must be a name or list of names")
			}
		case "env":
			job.Env, err = valueTable(val, "env")
		case "help":
			job.Help = val
		case "home":
			job.Home = val
		case "skip":
			job.Skip = val
		case "confirm":
			s, isStr := val.(string)
			if !isStr {
				err = zerr.Wrap(domain.ErrConfigSyntax, "confirm must be a string")
			}
			job.Confirm = s
		case "interactive":
			job.Interactive, err = boolValue(val, name, key)
		case "capture":
			job.Capture, err = boolValue(val, name, key)
		case "silent":
			job.Silent, err = boolValue(val, name, key)
		case "lock":
			job.Lock, err = boolValue(val, name, key)
		case "sleep":
			n, isInt := val.(int)
			if !isInt {
				err = zerr.Wrap(domain.ErrConfigSyntax, "sleep must be an integer")
			}
			job.Sleep = n
		case "open":
			job.Open = anyList(val)
		default:
			l.logger.Warn(fmt.Sprintf("job %s: ignoring unknown option %q", name, key))
		}
		if err != nil {
			return nil, zerr.With(err, "job", name)
		}
	}

	if len(job.Run) == 0 && len(job.After) == 0 && len(job.Open) == 0 {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrInvalidJob, "a job needs at least one of run, after or open"),
			"job", name,
		)
	}
	return job, nil
}

// valueTable converts a mapping into an ordered table. The underlying map has
// no order left, so names go in sorted; resolution order is decided by the
// dependency toposort anyway, this just pins the tie-break.
func valueTable(v any, what string) (*domain.ValueTable, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrConfigSyntax, what+" must be a mapping")
	}
	t := domain.NewValueTable()
	for _, k := range sortedKeys(m) {
		t.Set(k, m[k])
	}
	return t, nil
}

func anyList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	if v == nil {
		return nil
	}
	return []any{v}
}

func boolValue(v any, owner, key string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, zerr.With(
			zerr.Wrap(domain.ErrConfigSyntax, key+" must be a boolean"),
			"owner", owner,
		)
	}
	return b, nil
}
