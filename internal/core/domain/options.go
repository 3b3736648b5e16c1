// Package domain contains the core types shared by the route build cache and its adapters.
package domain

import (
	"strconv"
	"strings"
)

// Mode is the execution mode routes are bundled for.
type Mode string

const (
	// ModeDevelopment bundles unminified code with development checks enabled.
	ModeDevelopment Mode = "development"
	// ModeProduction bundles minified code with development checks disabled.
	ModeProduction Mode = "production"
)

// ParseMode converts a user supplied string into a Mode.
// An empty string yields ModeDevelopment.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDevelopment:
		return ModeDevelopment, nil
	case ModeProduction:
		return ModeProduction, nil
	default:
		return "", ErrInvalidMode
	}
}

// EnvironmentNode is the only runtime API routes are bundled for.
const EnvironmentNode = "node"

// BuildOptions configures a single route build. It is passed by value and never mutated.
type BuildOptions struct {
	// Mode selects minification and development checks.
	Mode Mode
	// AppDir is the routing directory export keys are relative to.
	AppDir string
	// Port is the local dev server port the bundler resolves modules against.
	Port int
	// ShouldThrow propagates build failures instead of suppressing them.
	ShouldThrow bool
}

// DevServerURL returns the address of the local dev server.
func (o BuildOptions) DevServerURL() string {
	return "http://localhost:" + strconv.Itoa(o.Port)
}

// Minify reports whether output should be minified.
func (o BuildOptions) Minify() bool {
	return o.Mode == ModeProduction
}

// Dev reports whether development checks should be kept in the output.
func (o BuildOptions) Dev() bool {
	return o.Mode != ModeProduction
}

// BundleRequest is everything the bundler needs to compile one route.
type BundleRequest struct {
	ProjectRoot  string
	DevServerURL string
	FilePath     string
	Minify       bool
	Dev          bool
	Environment  string
}

// NewBundleRequest derives the bundler request for a route from the build options.
func NewBundleRequest(projectRoot, filePath string, opts BuildOptions) BundleRequest {
	return BundleRequest{
		ProjectRoot:  projectRoot,
		DevServerURL: opts.DevServerURL(),
		FilePath:     filePath,
		Minify:       opts.Minify(),
		Dev:          opts.Dev(),
		Environment:  EnvironmentNode,
	}
}
