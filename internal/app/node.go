package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/apiroutes/internal/adapters/artifact"
	"go.trai.ch/apiroutes/internal/adapters/bundler"
	"go.trai.ch/apiroutes/internal/adapters/config"
	"go.trai.ch/apiroutes/internal/adapters/linear"
	"go.trai.ch/apiroutes/internal/adapters/logger"
	"go.trai.ch/apiroutes/internal/adapters/reporter"
	"go.trai.ch/apiroutes/internal/adapters/router"
	"go.trai.ch/apiroutes/internal/adapters/watcher"
	"go.trai.ch/apiroutes/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components used by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			bundler.NodeID,
			reporter.NodeID,
			router.NodeID,
			artifact.NodeID,
			watcher.NodeID,
			logger.NodeID,
			linear.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	bundlers, err := graft.Dep[ports.BundlerFactory](ctx)
	if err != nil {
		return nil, err
	}

	rep, err := graft.Dep[ports.ErrorReporter](ctx)
	if err != nil {
		return nil, err
	}

	discoverer, err := graft.Dep[ports.RouteDiscoverer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, bundlers, rep, discoverer, store, fileWatcher, log, renderer), nil
}
