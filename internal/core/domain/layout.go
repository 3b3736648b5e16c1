package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "apiroutes.yaml"

	// DefaultAppDir is the routing directory used when none is configured.
	DefaultAppDir = "app"

	// DefaultOutDir is the export directory used when none is configured.
	DefaultOutDir = "dist/server"

	// DefaultPort is the dev server port used when none is configured.
	DefaultPort = 8081

	// ManifestFileName is the name of the manifest written next to exported routes.
	ManifestFileName = "manifest.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultOutPath returns the export directory for the given project root.
func DefaultOutPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(DefaultOutDir))
}

// DefaultAppPath returns the routing directory for the given project root.
func DefaultAppPath(root string) string {
	return filepath.Join(root, DefaultAppDir)
}
