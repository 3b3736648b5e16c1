// Package config provides the configuration loader for apiroutes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the project configuration.
//
// An explicit path is read as is, relative to cwd. Otherwise apiroutes.yaml is
// searched from cwd upwards and, when none exists, defaults rooted at cwd are used.
func (l *Loader) Load(cwd, path string) (*domain.ProjectConfig, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return l.loadConfigfile(filepath.Clean(path))
	}

	configPath, ok := findConfiguration(cwd)
	if !ok {
		l.Logger.Warn(fmt.Sprintf("no %s found, using defaults rooted at %s", domain.ConfigFileName, cwd))
		return domain.DefaultProjectConfig(filepath.Clean(cwd)), nil
	}
	return l.loadConfigfile(configPath)
}

// findConfiguration walks up from cwd looking for the config file.
func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadConfigfile(configPath string) (*domain.ProjectConfig, error) {
	var file Configfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	root := resolveDir(filepath.Dir(configPath), file.Root)
	cfg := domain.DefaultProjectConfig(root)
	cfg.ConfigPath = configPath
	cfg.ShouldThrow = file.ShouldThrow
	cfg.EvictOnSettle = file.EvictOnSettle

	if file.AppDir != "" {
		cfg.AppDir = resolveDir(root, file.AppDir)
	}
	if file.OutDir != "" {
		cfg.OutDir = resolveDir(root, file.OutDir)
	}
	if err := cfg.ValidateLayout(); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if file.Port != 0 {
		if err := domain.ValidatePort(file.Port); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		cfg.Port = file.Port
	}

	mode, err := domain.ParseMode(file.Mode)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "mode", file.Mode), "path", configPath)
	}
	cfg.Mode = mode

	if file.Bundler != nil {
		bundler, err := buildBundlerConfig(file.Bundler)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		cfg.Bundler = bundler
	}

	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s", file.Version, configPath))
	}

	return cfg, nil
}

func buildBundlerConfig(dto *BundlerDTO) (domain.BundlerConfig, error) {
	kind := domain.BundlerKind(dto.Kind)
	if kind == "" {
		kind = domain.BundlerDevServer
	}

	switch kind {
	case domain.BundlerDevServer:
	case domain.BundlerCommand:
		if len(dto.Command) == 0 {
			return domain.BundlerConfig{}, domain.ErrMissingBundlerCommand
		}
	default:
		return domain.BundlerConfig{}, zerr.With(domain.ErrUnknownBundlerKind, "kind", dto.Kind)
	}

	return domain.BundlerConfig{
		Kind:    kind,
		Command: dto.Command,
		Env:     dto.Env,
	}, nil
}

// resolveDir returns dir resolved against base unless it is absolute.
func resolveDir(base, dir string) string {
	if dir == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(base, dir))
}

// readAndUnmarshalYAML reads a YAML file and strictly decodes it into target.
// An empty file leaves target untouched.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

var _ ports.ConfigLoader = (*Loader)(nil)
