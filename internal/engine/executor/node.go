package executor

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/console"
	"github.com/chorehq/chore/internal/adapters/flock"
	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/adapters/opener"
	"github.com/chorehq/chore/internal/adapters/shell"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "engine.executor"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			console.NodeID,
			flock.NodeID,
			opener.NodeID,
			logger.NodeID,
			evaluator.NodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			sh, err := graft.Dep[ports.Shell](ctx)
			if err != nil {
				return nil, err
			}
			con, err := graft.Dep[ports.Console](ctx)
			if err != nil {
				return nil, err
			}
			lock, err := graft.Dep[ports.Locker](ctx)
			if err != nil {
				return nil, err
			}
			open, err := graft.Dep[ports.Opener](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			eval, err := graft.Dep[*evaluator.Evaluator](ctx)
			if err != nil {
				return nil, err
			}
			return New(sh, con, lock, open, log, eval, clockwork.NewRealClock()), nil
		},
	})
}
