package console

import (
	"context"

	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the console Graft node.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[ports.Console]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Console, error) {
			return New(), nil
		},
	})
}
