package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// RouteSuffix marks a source file as an API route.
const RouteSuffix = "+api"

// SourceExtensions are the extensions a route source file may have.
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// OutputExtension is the extension every exported route is written with.
const OutputExtension = ".js"

// IsSourceFile reports whether name carries one of the route source extensions.
func IsSourceFile(name string) bool {
	return sourceExt(name) != ""
}

// IsRouteFile reports whether name is an API route source file, e.g. "hello+api.ts".
func IsRouteFile(name string) bool {
	ext := sourceExt(name)
	if ext == "" {
		return false
	}
	return strings.HasSuffix(strings.TrimSuffix(filepath.Base(name), ext), RouteSuffix)
}

// OutputKey returns the export key of a route: its path relative to appDir with
// the source extension replaced by ".js", using forward slashes.
func OutputKey(appDir, filePath string) (string, error) {
	if ext := sourceExt(filePath); ext != "" {
		filePath = strings.TrimSuffix(filePath, ext) + OutputExtension
	}

	rel, err := filepath.Rel(appDir, filePath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrRouteOutsideAppDir.Error()), "path", filePath)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(ErrRouteOutsideAppDir, "path", filePath)
	}

	return filepath.ToSlash(rel), nil
}

func sourceExt(name string) string {
	ext := filepath.Ext(name)
	for _, candidate := range SourceExtensions {
		if ext == candidate {
			return ext
		}
	}
	return ""
}
