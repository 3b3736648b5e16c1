package bundler

import (
	"net/http"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory selects a bundler implementation from configuration.
type Factory struct {
	client *http.Client
	logger ports.Logger
}

// NewFactory creates a Factory. client is used by dev server bundlers.
func NewFactory(client *http.Client, logger ports.Logger) *Factory {
	return &Factory{
		client: client,
		logger: logger,
	}
}

// For returns the bundler described by cfg. An empty kind selects the dev server.
func (f *Factory) For(cfg domain.BundlerConfig) (ports.Bundler, error) {
	switch cfg.Kind {
	case domain.BundlerDevServer, "":
		return NewDevServer(f.client), nil
	case domain.BundlerCommand:
		if len(cfg.Command) == 0 {
			return nil, domain.ErrMissingBundlerCommand
		}
		return NewCommand(cfg.Command, cfg.Env, f.logger), nil
	default:
		return nil, zerr.With(domain.ErrUnknownBundlerKind, "kind", string(cfg.Kind))
	}
}

var _ ports.BundlerFactory = (*Factory)(nil)
