package cache

import (
	"context"

	"github.com/chorehq/chore/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the session cache Graft node.
const NodeID graft.ID = "adapter.session_cache"

func init() {
	graft.Register(graft.Node[ports.SessionCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SessionCache, error) {
			return NewStore(), nil
		},
	})
}
