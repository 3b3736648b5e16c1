// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/apiroutes/internal/core/domain"
)

// Bundler compiles a single route file into server-executable code.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle returns the compiled source text of req.FilePath.
	// It returns an error if compilation fails.
	Bundle(ctx context.Context, req domain.BundleRequest) (string, error)
}

// BundlerFactory creates the bundler selected by a project's configuration.
type BundlerFactory interface {
	// For returns a Bundler for the given configuration.
	For(cfg domain.BundlerConfig) (Bundler, error)
}
