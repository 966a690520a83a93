// Package executor runs a validated execution sequence: one logical thread,
// dependencies first, fail-fast. Nothing here re-checks graph shape; by the
// time a sequence reaches the executor it is complete and acyclic.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
)

// lockTimeout bounds how long an invocation waits for another one holding
// the project lock.
const lockTimeout = 30 * time.Second

// Executor drives the per-node state machine over a sequence.
type Executor struct {
	shell   ports.Shell
	console ports.Console
	locker  ports.Locker
	opener  ports.Opener
	logger  ports.Logger
	eval    *evaluator.Evaluator
	clock   clockwork.Clock
}

// New creates a new Executor.
func New(
	shell ports.Shell,
	console ports.Console,
	locker ports.Locker,
	opener ports.Opener,
	logger ports.Logger,
	eval *evaluator.Evaluator,
	clock clockwork.Clock,
) *Executor {
	return &Executor{
		shell:   shell,
		console: console,
		locker:  locker,
		opener:  opener,
		logger:  logger,
		eval:    eval,
		clock:   clock,
	}
}

// RunParams is everything a single invocation's execution needs: the loaded
// document, the sequence the scheduler built for it, and the composed scope.
type RunParams struct {
	Doc      *domain.Document
	Sequence []domain.InternedString
	Scope    *domain.Scope
	Host     ports.PluginHost

	// Home is the resolved project home directory.
	Home string

	// Force disables skip predicates for this invocation.
	Force bool
}

// Run executes the sequence in order. The first failing node aborts the
// remainder; a declined confirmation aborts it too, but cleanly.
func (e *Executor) Run(ctx context.Context, p RunParams) error {
	ran := make(map[domain.InternedString]bool, len(p.Sequence))

	for _, id := range p.Sequence {
		if ran[id] {
			continue
		}
		ran[id] = true

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runNode(ctx, p, id); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runNode(ctx context.Context, p RunParams, id domain.InternedString) error {
	kind, name := domain.ParseNodeID(id.String())
	switch kind {
	case domain.KindPluginLoad:
		return e.loadPlugin(ctx, p, id, name)
	case domain.KindPluginUnload:
		return e.unloadPlugin(ctx, p, id, name)
	default:
		return e.runJob(ctx, p, p.Doc.Jobs[name])
	}
}

// loadPlugin runs a plugin load under the project lock: plugin setup touches
// shared state (virtualenvs, credential caches) that concurrent invocations
// must not race on.
func (e *Executor) loadPlugin(ctx context.Context, p RunParams, id domain.InternedString, name string) error {
	if p.Host.Loaded(name) {
		return nil
	}
	e.console.Running(id.String())

	release, err := e.locker.Acquire(ctx, p.Doc.Path, lockTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			e.logger.Error(zerr.Wrap(err, "failed to release project lock"))
		}
	}()

	if err := p.Host.Load(ctx, name, p.Scope); err != nil {
		e.console.Errorf("plugin %s failed to load: %v", name, err)
		return err
	}
	e.console.Finished(id.String())
	return nil
}

func (e *Executor) unloadPlugin(ctx context.Context, p RunParams, id domain.InternedString, name string) error {
	e.console.Running(id.String())
	if err := p.Host.Unload(ctx, name, p.Scope); err != nil {
		e.console.Errorf("plugin %s failed to unload: %v", name, err)
		return err
	}
	e.console.Finished(id.String())
	return nil
}

//nolint:cyclop // the job state machine reads best in one piece
func (e *Executor) runJob(ctx context.Context, p RunParams, job *domain.JobSpec) error {
	skipped, err := e.shouldSkip(ctx, p, job)
	if err != nil {
		return err
	}
	if skipped {
		if !job.Silent {
			e.console.Skipped(job.Name)
		}
		return nil
	}

	if job.Confirm != "" {
		confirmed, err := e.confirm(ctx, p, job)
		if err != nil {
			return err
		}
		if !confirmed {
			e.console.Declined(job.Name)
			return zerr.With(domain.ErrConfirmationDeclined, "job", job.Name)
		}
	}

	jobEnv, err := e.eval.ResolveTable(ctx, job.Env, p.Scope, p.Home)
	if err != nil {
		return zerr.With(err, "job", job.Name)
	}

	home, err := e.jobHome(ctx, p, job)
	if err != nil {
		return err
	}

	if !job.Silent && len(job.Run) > 0 {
		e.console.Running(job.Name)
	}

	if err := e.runTasks(ctx, p, job, jobEnv, home); err != nil {
		return err
	}

	if !job.Silent && len(job.Run) > 0 {
		e.console.Finished(job.Name)
	}

	if job.Sleep > 0 {
		if err := e.sleep(ctx, job.Sleep); err != nil {
			return err
		}
	}

	return e.openURIs(ctx, p, job)
}

// runTasks spawns the job's tasks sequentially, under the project lock when
// the job asks for it.
func (e *Executor) runTasks(ctx context.Context, p RunParams, job *domain.JobSpec, jobEnv map[string]string, home string) error {
	if len(job.Run) == 0 {
		return nil
	}

	if job.Lock {
		release, err := e.locker.Acquire(ctx, p.Doc.Path, lockTimeout)
		if err != nil {
			return err
		}
		defer func() {
			if err := release(); err != nil {
				e.logger.Error(zerr.Wrap(err, "failed to release project lock"))
			}
		}()
	}

	environ := p.Scope.Environ(jobEnv)
	for _, entry := range job.Run {
		line, err := e.eval.Eval(ctx, entry, p.Scope, p.Home)
		if err != nil {
			return zerr.With(err, "job", job.Name)
		}
		if !job.Silent {
			e.console.Task(line)
		}

		res, err := e.shell.Run(ctx, ports.ShellCommand{
			Line:        line,
			Dir:         home,
			Env:         environ,
			Interactive: job.Interactive,
			Capture:     job.Capture,
		})
		if err != nil {
			return zerr.With(errors.Join(domain.ErrTaskExecution, err), "job", job.Name)
		}
		if res.ExitCode != 0 {
			e.console.Errorf("%s: task exited with code %d", job.Name, res.ExitCode)
			return zerr.With(zerr.With(zerr.With(
				domain.ErrTaskExecution,
				"exit_code", res.ExitCode),
				"job", job.Name),
				"task", line)
		}
		if job.Capture && res.Stdout != "" {
			e.logger.Info(fmt.Sprintf("%s: %s", job.Name, res.Stdout))
		}
	}
	return nil
}

func (e *Executor) shouldSkip(ctx context.Context, p RunParams, job *domain.JobSpec) (bool, error) {
	if job.Skip == nil || p.Force {
		return false, nil
	}
	skip, err := e.eval.EvalBool(ctx, job.Skip, p.Scope, p.Home)
	if err != nil {
		return false, zerr.With(err, "job", job.Name)
	}
	return skip, nil
}

func (e *Executor) confirm(ctx context.Context, p RunParams, job *domain.JobSpec) (bool, error) {
	msg, err := e.eval.Eval(ctx, &domain.EnvSubst{Template: job.Confirm}, p.Scope, p.Home)
	if err != nil {
		return false, zerr.With(err, "job", job.Name)
	}
	confirmed, err := e.console.Confirm(msg)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to read confirmation"), "job", job.Name)
	}
	return confirmed, nil
}

func (e *Executor) jobHome(ctx context.Context, p RunParams, job *domain.JobSpec) (string, error) {
	if job.Home == nil {
		return p.Home, nil
	}
	raw, err := e.eval.Eval(ctx, job.Home, p.Scope, p.Home)
	if err != nil {
		return "", zerr.With(err, "job", job.Name)
	}
	return evaluator.NormalizePath(raw, p.Home), nil
}

func (e *Executor) sleep(ctx context.Context, seconds int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.clock.After(time.Duration(seconds) * time.Second):
		return nil
	}
}

// openURIs hands the job's open list to the system handler. Opening is a
// courtesy side effect; a handler failure is logged, not fatal.
func (e *Executor) openURIs(ctx context.Context, p RunParams, job *domain.JobSpec) error {
	for _, entry := range job.Open {
		uri, err := e.eval.Eval(ctx, entry, p.Scope, p.Home)
		if err != nil {
			return zerr.With(err, "job", job.Name)
		}
		if err := e.opener.Open(uri); err != nil {
			e.logger.Error(err)
		}
	}
	return nil
}
