package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// BundlerKind selects the bundler adapter.
type BundlerKind string

const (
	// BundlerDevServer requests bundles from a running dev server over HTTP.
	BundlerDevServer BundlerKind = "devserver"
	// BundlerCommand runs an external command that prints the bundle to stdout.
	BundlerCommand BundlerKind = "command"
)

// BundlerConfig configures the bundler adapter.
type BundlerConfig struct {
	Kind    BundlerKind
	Command []string
	Env     map[string]string
}

// ProjectConfig is the resolved project configuration.
type ProjectConfig struct {
	// Root is the absolute project root.
	Root string
	// ConfigPath is the file the configuration was read from, empty for defaults.
	ConfigPath string
	// AppDir is the absolute routing directory.
	AppDir string
	// OutDir is the absolute export directory.
	OutDir string
	// Port is the dev server port.
	Port int
	// Mode is the bundling mode.
	Mode Mode
	// ShouldThrow propagates build failures instead of suppressing them.
	ShouldThrow bool
	// EvictOnSettle drops cache entries once their build settles.
	EvictOnSettle bool
	// Bundler configures the bundler adapter.
	Bundler BundlerConfig
}

// DefaultProjectConfig returns the configuration used when no config file exists.
func DefaultProjectConfig(root string) *ProjectConfig {
	return &ProjectConfig{
		Root:    root,
		AppDir:  DefaultAppPath(root),
		OutDir:  DefaultOutPath(root),
		Port:    DefaultPort,
		Mode:    ModeDevelopment,
		Bundler: BundlerConfig{Kind: BundlerDevServer},
	}
}

// BuildOptions returns the per-build options carried by the configuration.
func (c *ProjectConfig) BuildOptions() BuildOptions {
	return BuildOptions{
		Mode:        c.Mode,
		AppDir:      c.AppDir,
		Port:        c.Port,
		ShouldThrow: c.ShouldThrow,
	}
}

// ValidatePort checks that port is a usable TCP port.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return zerr.With(ErrInvalidPort, "port", port)
	}
	return nil
}

// ValidateLayout rejects an export directory at or below the routing
// directory, where exported files would be discovered as routes.
func (c *ProjectConfig) ValidateLayout() error {
	rel, err := filepath.Rel(c.AppDir, c.OutDir)
	if err != nil {
		//nolint:nilerr // paths without a relative form cannot nest
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return zerr.With(zerr.With(ErrOutDirInsideAppDir, "app_dir", c.AppDir), "out_dir", c.OutDir)
}
