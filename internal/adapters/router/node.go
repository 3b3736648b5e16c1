package router

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/apiroutes/internal/core/ports"
)

// NodeID is the unique identifier for the route discovery Graft node.
const NodeID graft.ID = "adapter.router"

func init() {
	graft.Register(graft.Node[ports.RouteDiscoverer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RouteDiscoverer, error) {
			return New(), nil
		},
	})
}
