package app

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/config"
	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"github.com/chorehq/chore/internal/engine/executor"
	"github.com/chorehq/chore/internal/engine/scheduler"
	"github.com/chorehq/chore/internal/plugins"
	"github.com/grindlemire/graft"
)

// Components provides controlled access to the initialized application for
// the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			executor.NodeID,
			evaluator.NodeID,
			plugins.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}
			exec, err := graft.Dep[*executor.Executor](ctx)
			if err != nil {
				return nil, err
			}
			eval, err := graft.Dep[*evaluator.Evaluator](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[*plugins.Registry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, sched, exec, eval, registry, log),
				Logger: log,
			}, nil
		},
	})
}
