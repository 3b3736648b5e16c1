package domain

import "go.trai.ch/zerr"

var (
	// ErrNoRoutesSpecified is returned when the bundle command is given no route files.
	ErrNoRoutesSpecified = zerr.New("no routes specified")

	// ErrBundleFailed is returned when bundling one or more requested routes fails.
	ErrBundleFailed = zerr.New("bundle failed")

	// ErrExportFailed is returned when exporting the routes of an app directory fails.
	ErrExportFailed = zerr.New("export failed")

	// ErrBundlerPanicked is returned when the bundler panics with a value that is not an error.
	ErrBundlerPanicked = zerr.New("bundler panicked")

	// ErrBundlerRequestFailed is returned when the dev server cannot be reached.
	ErrBundlerRequestFailed = zerr.New("failed to request bundle from dev server")

	// ErrBundlerBadStatus is returned when the dev server answers with a non-2xx status.
	ErrBundlerBadStatus = zerr.New("dev server returned an error")

	// ErrBundlerCommandFailed is returned when the bundler command exits unsuccessfully.
	ErrBundlerCommandFailed = zerr.New("bundler command failed")

	// ErrUnknownBundlerKind is returned when the configured bundler kind is not supported.
	ErrUnknownBundlerKind = zerr.New("unknown bundler kind, expected 'devserver' or 'command'")

	// ErrMissingBundlerCommand is returned when the command bundler has no command configured.
	ErrMissingBundlerCommand = zerr.New("bundler kind 'command' requires a command")

	// ErrRouteDiscoveryFailed is returned when the app directory cannot be scanned.
	ErrRouteDiscoveryFailed = zerr.New("failed to discover api routes")

	// ErrRouteOutsideAppDir is returned when a route file is not located under the app directory.
	ErrRouteOutsideAppDir = zerr.New("route is outside the app directory")

	// ErrRouteOutsideProjectRoot is returned when a route file cannot be addressed relative to the project root.
	ErrRouteOutsideProjectRoot = zerr.New("route is outside the project root")

	// ErrInvalidMode is returned when the configured mode is not recognised.
	ErrInvalidMode = zerr.New("invalid mode, expected 'development' or 'production'")

	// ErrInvalidPort is returned when the dev server port is out of range.
	ErrInvalidPort = zerr.New("invalid dev server port")

	// ErrOutDirInsideAppDir is returned when the export directory lies within the routing directory.
	ErrOutDirInsideAppDir = zerr.New("output directory must not be inside the app directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrOutputPathOutsideRoot is returned when an export key resolves outside the output directory.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside the output directory")

	// ErrArtifactCreateFailed is returned when an output directory cannot be created.
	ErrArtifactCreateFailed = zerr.New("failed to create output directory")

	// ErrArtifactWriteFailed is returned when an exported file cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write exported file")

	// ErrArtifactRemoveFailed is returned when a stale exported file cannot be removed.
	ErrArtifactRemoveFailed = zerr.New("failed to remove stale exported file")

	// ErrManifestMarshalFailed is returned when the export manifest cannot be encoded.
	ErrManifestMarshalFailed = zerr.New("failed to marshal export manifest")

	// ErrManifestReadFailed is returned when an existing export manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read export manifest")
)
