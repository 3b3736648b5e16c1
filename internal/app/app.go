// Package app implements the application layer for apiroutes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/apiroutes/internal/adapters/telemetry"
	"go.trai.ch/apiroutes/internal/adapters/watcher"
	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/apiroutes/internal/engine/routecache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	bundlers     ports.BundlerFactory
	reporter     ports.ErrorReporter
	router       ports.RouteDiscoverer
	store        ports.ArtifactStore
	watcher      ports.Watcher
	logger       ports.Logger
	renderer     ports.Renderer
	stdout       io.Writer
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	bundlers ports.BundlerFactory,
	reporter ports.ErrorReporter,
	router ports.RouteDiscoverer,
	store ports.ArtifactStore,
	fileWatcher ports.Watcher,
	log ports.Logger,
	renderer ports.Renderer,
) *App {
	return &App{
		configLoader: loader,
		bundlers:     bundlers,
		reporter:     reporter,
		router:       router,
		store:        store,
		watcher:      fileWatcher,
		logger:       log,
		renderer:     renderer,
		stdout:       os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithStdout sets where bundled code is printed.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDebounceWindow sets how long watch mode waits for file events to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// ConfigureLogging switches the logger to JSON output or debug verbosity
// when the logger supports it.
func (a *App) ConfigureLogging(jsonOutput, verbose bool) {
	if l, ok := a.logger.(logConfigurer); ok {
		l.SetJSON(jsonOutput)
		l.SetVerbose(verbose)
	}
}

type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// BuildOptions carries command line overrides for the project configuration.
// Zero values keep the configured setting.
type BuildOptions struct {
	ConfigPath  string
	Mode        string
	Port        int
	AppDir      string
	OutDir      string
	ShouldThrow bool
}

// Bundle builds the given route files and prints their code in argument order.
func (a *App) Bundle(ctx context.Context, files []string, opts BuildOptions) error {
	if len(files) == 0 {
		return domain.ErrNoRoutesSpecified
	}

	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	paths := make([]string, len(files))
	for i, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve route path"), "path", file)
		}
		paths[i] = abs
	}

	var results []domain.BuildResult
	err = a.withCache(ctx, cfg, func(cache *routecache.Cache) error {
		results = make([]domain.BuildResult, len(paths))

		g, gctx := errgroup.WithContext(ctx)
		for i, path := range paths {
			g.Go(func() error {
				result, err := cache.Bundle(gctx, cfg.Root, path, cfg.BuildOptions()).Wait(gctx)
				results[i] = result
				return err
			})
		}
		return g.Wait()
	})
	if err != nil {
		return errors.Join(domain.ErrBundleFailed, err)
	}

	failed := 0
	for _, result := range results {
		if !result.Valid {
			failed++
			continue
		}
		if err := writeCode(a.stdout, result.Code); err != nil {
			return zerr.Wrap(err, "failed to write bundle")
		}
	}
	if failed > 0 {
		return domain.ErrBundleFailed
	}
	return nil
}

// Export bundles every route of the app directory and writes the results to
// the output directory together with a manifest.
func (a *App) Export(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	var results map[string]domain.BuildResult
	err = a.withCache(ctx, cfg, func(cache *routecache.Cache) error {
		results, err = cache.ExportAll(ctx, cfg.Root, cfg.BuildOptions())
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrRouteDiscoveryFailed) {
			return err
		}
		return errors.Join(domain.ErrExportFailed, err)
	}

	return a.writeArtifacts(cfg, results)
}

// Watch exports every route, then rebuilds and re-exports whenever source
// files under the project root change. It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	return a.withCache(ctx, cfg, func(cache *routecache.Cache) error {
		s := &watchSession{app: a, cfg: cfg, cache: cache}
		s.export(ctx)

		if err := a.watcher.Start(ctx, cfg.Root); err != nil {
			return zerr.Wrap(err, "failed to start file watcher")
		}
		defer func() {
			_ = a.watcher.Stop()
		}()

		a.logger.Info(fmt.Sprintf("watching %s for changes", cfg.Root))

		batches := make(chan []string)
		debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
			select {
			case batches <- paths:
			case <-ctx.Done():
			}
		})

		g, gctx := errgroup.WithContext(ctx)

		// Event Routine
		g.Go(func() error {
			for event := range a.watcher.Events() {
				if s.relevant(event.Path) {
					debouncer.Add(event.Path)
				}
			}
			return nil
		})

		// Rebuild Routine
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case paths := <-batches:
					s.apply(gctx, paths)
					s.export(gctx)
				}
			}
		})

		return g.Wait()
	})
}

// resolveConfig loads the project configuration and applies overrides.
func (a *App) resolveConfig(opts BuildOptions) (*domain.ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	loaded, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	cfg := *loaded

	if opts.Mode != "" {
		mode, err := domain.ParseMode(opts.Mode)
		if err != nil {
			return nil, zerr.With(err, "mode", opts.Mode)
		}
		cfg.Mode = mode
	}
	if opts.Port != 0 {
		if err := domain.ValidatePort(opts.Port); err != nil {
			return nil, err
		}
		cfg.Port = opts.Port
	}
	if opts.AppDir != "" {
		cfg.AppDir = absFrom(cwd, opts.AppDir)
	}
	if opts.OutDir != "" {
		cfg.OutDir = absFrom(cwd, opts.OutDir)
	}
	if opts.ShouldThrow {
		cfg.ShouldThrow = true
	}
	if err := cfg.ValidateLayout(); err != nil {
		return nil, err
	}

	a.logger.Debug(fmt.Sprintf("project root %s, app dir %s, mode %s", cfg.Root, cfg.AppDir, cfg.Mode))
	return &cfg, nil
}

// withCache runs fn against a fresh route cache whose build spans are
// rendered by the App's renderer. The renderer summary is flushed when fn returns.
func (a *App) withCache(ctx context.Context, cfg *domain.ProjectConfig, fn func(*routecache.Cache) error) error {
	bundler, err := a.bundlers.For(cfg.Bundler)
	if err != nil {
		return zerr.Wrap(err, "failed to create bundler")
	}

	// Create a bridge that sends OTel spans to the renderer.
	bridge := telemetry.NewBridge(a.renderer)
	tp := setupOTel(bridge)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	cache := routecache.New(
		bundler,
		a.reporter,
		a.router,
		a.logger,
		telemetry.NewOTelTracer(telemetry.InstrumentationName),
		routecache.WithEvictOnSettle(cfg.EvictOnSettle),
	)
	return fn(cache)
}

func (a *App) writeArtifacts(cfg *domain.ProjectConfig, results map[string]domain.BuildResult) error {
	written, err := a.store.Write(cfg.OutDir, results)
	if err != nil {
		return zerr.With(err, "out_dir", cfg.OutDir)
	}

	a.logger.Info(fmt.Sprintf("exported %d route(s) to %s", written, cfg.OutDir))
	if failed := len(results) - written; failed > 0 {
		a.logger.Warn(fmt.Sprintf("%d route(s) failed to bundle and were skipped", failed))
	}
	return nil
}

// setupOTel installs a tracer provider that forwards spans to bridge.
func setupOTel(bridge sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}

func absFrom(base, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

func writeCode(w io.Writer, code string) error {
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	_, err := io.WriteString(w, code)
	return err
}
