// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/apiroutes/internal/adapters/artifact"
	_ "go.trai.ch/apiroutes/internal/adapters/bundler"
	_ "go.trai.ch/apiroutes/internal/adapters/config"
	_ "go.trai.ch/apiroutes/internal/adapters/linear"
	_ "go.trai.ch/apiroutes/internal/adapters/logger"
	_ "go.trai.ch/apiroutes/internal/adapters/reporter"
	_ "go.trai.ch/apiroutes/internal/adapters/router"
	_ "go.trai.ch/apiroutes/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/apiroutes/internal/app"
)
