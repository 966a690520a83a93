package evaluator

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/adapters/shell"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
)

// NodeID is the unique identifier for the expression evaluator Graft node.
const NodeID graft.ID = "engine.evaluator"

func init() {
	graft.Register(graft.Node[*Evaluator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Evaluator, error) {
			sh, err := graft.Dep[ports.Shell](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(sh, log, clockwork.NewRealClock()), nil
		},
	})
}
