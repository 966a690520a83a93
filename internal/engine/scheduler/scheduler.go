// Package scheduler expands requested targets into the full execution
// sequence: every job reachable over the predecessor lists plus the plugin
// lifecycle nodes they reference, dependencies first.
package scheduler

import (
	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler builds execution sequences from a loaded document.
type Scheduler struct {
	logger ports.Logger
}

// New creates a new Scheduler.
func New(logger ports.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Build resolves targets against the document into a validated,
// dependencies-first sequence of node identifiers. The whole sequence is
// validated before anything runs: an unknown name or a dependency cycle
// is fatal here, never mid-run.
func (s *Scheduler) Build(doc *domain.Document, targets []string) ([]domain.InternedString, error) {
	b := &builder{doc: doc, graph: domain.NewGraph(), visiting: make(map[string]bool)}
	for _, target := range targets {
		if err := b.visit(target, ""); err != nil {
			return nil, err
		}
	}

	if err := b.graph.Validate(); err != nil {
		return nil, err
	}
	return b.graph.Flatten(), nil
}

type builder struct {
	doc      *domain.Document
	graph    *domain.Graph
	visiting map[string]bool
}

// visit adds the node for id and, recursively, everything it depends on.
// wantedBy names the referencing job for error reporting; it is empty for
// the requested targets themselves.
//
// A predecessor chain that loops back breaks the recursion here and is
// reported by the graph validation, which names the whole cycle.
func (b *builder) visit(id, wantedBy string) error {
	interned := domain.Intern(id)
	if b.graph.Has(interned) || b.visiting[id] {
		return nil
	}
	b.visiting[id] = true
	defer delete(b.visiting, id)

	kind, name := domain.ParseNodeID(id)
	if kind != domain.KindJob {
		if _, ok := b.doc.Plugins[name]; !ok {
			return reference(zerr.With(domain.ErrUnknownPlugin, "plugin", name), wantedBy)
		}
		return b.graph.AddNode(interned, nil)
	}

	job, ok := b.doc.Jobs[name]
	if !ok {
		return reference(zerr.With(domain.ErrUnknownJob, "job", name), wantedBy)
	}

	preds := make([]domain.InternedString, 0, len(job.After))
	for _, pred := range job.After {
		if err := b.visit(pred, name); err != nil {
			return err
		}
		preds = append(preds, domain.Intern(pred))
	}
	return b.graph.AddNode(interned, preds)
}

func reference(err error, wantedBy string) error {
	if wantedBy == "" {
		return err
	}
	return zerr.With(err, "wanted_by", wantedBy)
}
