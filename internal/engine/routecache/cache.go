// Package routecache memoizes API route builds per file path.
//
// The cache holds at most one build per route file. Concurrent requests for a
// path share the same Operation, a settled Operation is reused until the route
// is explicitly rebundled, and failures are reported once and then either
// propagated or downgraded to an absent result depending on the build options.
package routecache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Cache deduplicates route builds and delegates compilation to a Bundler.
type Cache struct {
	bundler  ports.Bundler
	reporter ports.ErrorReporter
	router   ports.RouteDiscoverer
	logger   ports.Logger
	tracer   ports.Tracer

	evictOnSettle bool

	mu      sync.Mutex
	entries map[string]*Operation
}

// Option configures a Cache.
type Option func(*Cache)

// WithEvictOnSettle drops an entry as soon as its build settles, so the next
// request for the route triggers a fresh build. By default entries are kept
// until the route is rebundled.
func WithEvictOnSettle(enable bool) Option {
	return func(c *Cache) {
		c.evictOnSettle = enable
	}
}

// New creates an empty Cache.
func New(
	bundler ports.Bundler,
	reporter ports.ErrorReporter,
	router ports.RouteDiscoverer,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *Cache {
	c := &Cache{
		bundler:  bundler,
		reporter: reporter,
		router:   router,
		logger:   logger,
		tracer:   tracer,
		entries:  make(map[string]*Operation),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bundle returns the build of filePath, starting one if none is cached.
//
// The returned Operation is registered before the build starts, so every
// concurrent caller for the same path receives the identical Operation and the
// bundler runs once. The build is detached from ctx cancellation.
func (c *Cache) Bundle(ctx context.Context, projectRoot, filePath string, opts domain.BuildOptions) *Operation {
	c.mu.Lock()
	defer c.mu.Unlock()

	if op, ok := c.entries[filePath]; ok {
		return op
	}
	return c.startLocked(ctx, projectRoot, filePath, opts)
}

// Rebundle discards any cached build of filePath and starts a new one.
//
// A displaced build that is still running is not cancelled. Its waiters still
// receive its outcome but the cache no longer returns it.
func (c *Cache) Rebundle(ctx context.Context, projectRoot, filePath string, opts domain.BuildOptions) *Operation {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, filePath)
	return c.startLocked(ctx, projectRoot, filePath, opts)
}

// ExportAll bundles every route under opts.AppDir concurrently and returns the
// results keyed by their export path. Suppressed failures appear as invalid
// results. If any build fails with ShouldThrow set, the whole export fails.
func (c *Cache) ExportAll(
	ctx context.Context,
	projectRoot string,
	opts domain.BuildOptions,
) (map[string]domain.BuildResult, error) {
	files, err := c.router.Routes(opts.AppDir)
	if err != nil {
		return nil, errors.Join(domain.ErrRouteDiscoveryFailed, zerr.With(err, "app_dir", opts.AppDir))
	}

	var mu sync.Mutex
	results := make(map[string]domain.BuildResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			key, err := domain.OutputKey(opts.AppDir, file)
			if err != nil {
				return err
			}

			result, err := c.Bundle(gctx, projectRoot, file, opts).Wait(gctx)
			if err != nil {
				return err
			}

			mu.Lock()
			results[key] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Forget removes the entry for filePath without starting a build.
// It reports whether an entry was removed.
func (c *Cache) Forget(filePath string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[filePath]
	delete(c.entries, filePath)
	return ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Paths returns the cached file paths in lexical order.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	paths := make([]string, 0, len(c.entries))
	for path := range c.entries {
		paths = append(paths, path)
	}
	c.mu.Unlock()

	slices.Sort(paths)
	return paths
}

// startLocked registers a new Operation and launches its build. c.mu must be held.
func (c *Cache) startLocked(ctx context.Context, projectRoot, filePath string, opts domain.BuildOptions) *Operation {
	op := newOperation(filePath)
	c.entries[filePath] = op
	go c.run(context.WithoutCancel(ctx), op, projectRoot, opts)
	return op
}

func (c *Cache) run(ctx context.Context, op *Operation, projectRoot string, opts domain.BuildOptions) {
	ctx, span := c.tracer.Start(ctx, "bundle "+displayPath(projectRoot, op.filePath),
		ports.WithAttribute("file", op.filePath),
		ports.WithAttribute("mode", string(opts.Mode)),
	)
	defer span.End()

	c.logger.Debug(fmt.Sprintf("check API route: %s %s", opts.AppDir, op.filePath))

	code, err := c.invoke(ctx, domain.NewBundleRequest(projectRoot, op.filePath, opts))
	if err == nil {
		c.finish(op, domain.Compiled(code), nil)
		return
	}

	span.RecordError(err)

	var p *nonErrorPanic
	if !errors.As(err, &p) {
		c.reporter.Report(ctx, domain.BuildFailure{
			Err:         err,
			ProjectRoot: projectRoot,
			FilePath:    op.filePath,
		})
	}

	if opts.ShouldThrow {
		c.finish(op, domain.Suppressed(), err)
		return
	}
	c.finish(op, domain.Suppressed(), nil)
}

// invoke calls the bundler, turning a panic into an error.
func (c *Cache) invoke(ctx context.Context, req domain.BundleRequest) (code string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = &nonErrorPanic{value: r}
	}()

	return c.bundler.Bundle(ctx, req)
}

func (c *Cache) finish(op *Operation, result domain.BuildResult, err error) {
	if c.evictOnSettle {
		c.mu.Lock()
		if c.entries[op.filePath] == op {
			delete(c.entries, op.filePath)
		}
		c.mu.Unlock()
	}
	op.settle(result, err)
}

// nonErrorPanic carries a recovered panic value that is not an error.
// Such failures are not forwarded to the reporter.
type nonErrorPanic struct {
	value any
}

func (p *nonErrorPanic) Error() string {
	return fmt.Sprintf("%s: %v", domain.ErrBundlerPanicked.Error(), p.value)
}

func (p *nonErrorPanic) Unwrap() error {
	return domain.ErrBundlerPanicked
}

// displayPath shortens filePath for span names when it lives under projectRoot.
func displayPath(projectRoot, filePath string) string {
	rel, err := filepath.Rel(projectRoot, filePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filePath
	}
	return filepath.ToSlash(rel)
}
