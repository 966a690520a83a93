package opener

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the URI opener Graft node.
const NodeID graft.ID = "adapter.opener"

func init() {
	graft.Register(graft.Node[ports.Opener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Opener, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(log), nil
		},
	})
}
