// Package router discovers API route files below an app directory.
package router

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
)

// Router implements ports.RouteDiscoverer on the local file system.
type Router struct{}

// New creates a Router.
func New() *Router {
	return &Router{}
}

// Routes returns the absolute paths of all route files below appDir in lexical order.
// A missing appDir has no routes.
func (r *Router) Routes(appDir string) ([]string, error) {
	root, err := filepath.Abs(appDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRouteDiscoveryFailed.Error()), "app_dir", appDir)
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRouteDiscoveryFailed.Error()), "app_dir", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(domain.ErrRouteDiscoveryFailed, "app_dir", root)
	}

	routes := []string{}
	for path, err := range WalkFiles(root) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrRouteDiscoveryFailed.Error()), "app_dir", root)
		}
		if domain.IsRouteFile(path) {
			routes = append(routes, path)
		}
	}

	slices.Sort(routes)
	return routes, nil
}

var _ ports.RouteDiscoverer = (*Router)(nil)
