package reporter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/apiroutes/internal/adapters/logger"
	"go.trai.ch/apiroutes/internal/core/ports"
)

// NodeID is the unique identifier for the error reporter Graft node.
const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.ErrorReporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ErrorReporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
