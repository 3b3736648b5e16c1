package bundler

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/apiroutes/internal/adapters/logger"
	"go.trai.ch/apiroutes/internal/core/ports"
)

// NodeID is the unique identifier for the bundler factory Graft node.
const NodeID graft.ID = "adapter.bundler"

func init() {
	graft.Register(graft.Node[ports.BundlerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BundlerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(http.DefaultClient, log), nil
		},
	})
}
