package flock

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
)

// NodeID is the unique identifier for the project locker Graft node.
const NodeID graft.ID = "adapter.locker"

func init() {
	graft.Register(graft.Node[ports.Locker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Locker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocker(clockwork.NewRealClock(), log), nil
		},
	})
}
