package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/engine/routecache"
)

// watchSession applies batches of changed paths to a route cache.
type watchSession struct {
	app   *App
	cfg   *domain.ProjectConfig
	cache *routecache.Cache
}

// relevant reports whether a change to path can affect a route build.
func (s *watchSession) relevant(path string) bool {
	if !domain.IsSourceFile(path) {
		return false
	}
	return !within(s.cfg.OutDir, path)
}

// apply rebundles changed routes and forgets deleted ones. A change to any
// other source file rebundles every cached route, since the bundler owns the
// import graph.
func (s *watchSession) apply(ctx context.Context, paths []string) {
	opts := s.cfg.BuildOptions()
	rebuildAll := false

	for _, path := range paths {
		isRoute := domain.IsRouteFile(path) && within(s.cfg.AppDir, path)
		exists := fileExists(path)

		switch {
		case isRoute && exists:
			s.app.logger.Debug("route changed: " + path)
			s.cache.Rebundle(ctx, s.cfg.Root, path, opts)
		case isRoute:
			s.app.logger.Debug("route removed: " + path)
			s.cache.Forget(path)
		default:
			rebuildAll = true
		}
	}

	if !rebuildAll {
		return
	}
	for _, path := range s.cache.Paths() {
		if !fileExists(path) {
			s.cache.Forget(path)
			continue
		}
		s.cache.Rebundle(ctx, s.cfg.Root, path, opts)
	}
}

// export writes the current state of every route. Failures are logged so
// the watch loop keeps running.
func (s *watchSession) export(ctx context.Context) {
	results, err := s.cache.ExportAll(ctx, s.cfg.Root, s.cfg.BuildOptions())
	if err == nil {
		err = s.app.writeArtifacts(s.cfg, results)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.app.logger.Error(err)
	}

	if s.app.renderer != nil {
		_ = s.app.renderer.Flush()
	}
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
