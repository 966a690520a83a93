package plugins

import (
	"context"

	"github.com/chorehq/chore/internal/adapters/cache"
	"github.com/chorehq/chore/internal/adapters/console"
	"github.com/chorehq/chore/internal/adapters/logger"
	"github.com/chorehq/chore/internal/adapters/shell"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
)

// NodeID is the unique identifier for the plugin registry Graft node.
const NodeID graft.ID = "plugins.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, console.NodeID, cache.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			sh, err := graft.Dep[ports.Shell](ctx)
			if err != nil {
				return nil, err
			}
			con, err := graft.Dep[ports.Console](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.SessionCache](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(
				NewPython(sh, log),
				NewDotenv(log),
				NewAWS(sh, con, store, log, clockwork.NewRealClock()),
			), nil
		},
	})
}
