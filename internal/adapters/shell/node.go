package shell

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[ports.Shell]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Shell, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
