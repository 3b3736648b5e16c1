// Package artifact writes exported API routes and their manifest to disk.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestVersion is the format version written to manifest.json.
const ManifestVersion = 1

// Manifest describes the result of an export.
type Manifest struct {
	Version int                      `json:"version"`
	Routes  map[string]ManifestEntry `json:"routes"`
}

// ManifestEntry describes one exported route.
type ManifestEntry struct {
	Digest string `json:"digest,omitempty"`
	Size   int    `json:"size"`
	Failed bool   `json:"failed,omitempty"`
}

// Store implements ports.ArtifactStore on the local file system.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Write stores each valid result under outDir at its key and records every
// result in outDir/manifest.json. Invalid results are listed as failed.
// Files of the previous export whose key is gone or failed are removed.
func (s *Store) Write(outDir string, files map[string]domain.BuildResult) (int, error) {
	if err := s.prune(outDir, files); err != nil {
		return 0, err
	}

	manifest := Manifest{
		Version: ManifestVersion,
		Routes:  make(map[string]ManifestEntry, len(files)),
	}

	written := 0
	for _, key := range slices.Sorted(maps.Keys(files)) {
		result := files[key]

		target, err := resolveTarget(outDir, key)
		if err != nil {
			return written, err
		}

		if !result.Valid {
			manifest.Routes[key] = ManifestEntry{Failed: true}
			continue
		}

		if err := writeFile(target, []byte(result.Code)); err != nil {
			return written, zerr.With(err, "key", key)
		}
		manifest.Routes[key] = ManifestEntry{
			Digest: Digest(result.Code),
			Size:   len(result.Code),
		}
		written++
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return written, zerr.Wrap(err, domain.ErrManifestMarshalFailed.Error())
	}
	if err := writeFile(filepath.Join(outDir, domain.ManifestFileName), append(data, '\n')); err != nil {
		return written, err
	}

	return written, nil
}

// ReadManifest loads the manifest from outDir. A missing manifest returns nil.
func (s *Store) ReadManifest(outDir string) (*Manifest, error) {
	//nolint:gosec // outDir comes from the project configuration
	data, err := os.ReadFile(filepath.Join(outDir, domain.ManifestFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}
	return &manifest, nil
}

// prune removes the files of the previous export that the next manifest no
// longer lists as written. An unreadable previous manifest is ignored.
func (s *Store) prune(outDir string, files map[string]domain.BuildResult) error {
	stale := make(map[string]struct{})
	if previous, err := s.ReadManifest(outDir); err == nil && previous != nil {
		for key, entry := range previous.Routes {
			if !entry.Failed {
				stale[key] = struct{}{}
			}
		}
	}
	for key, result := range files {
		if result.Valid {
			delete(stale, key)
		} else {
			stale[key] = struct{}{}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(stale)) {
		target, err := resolveTarget(outDir, key)
		if err != nil {
			continue
		}
		if err := removeFile(outDir, target); err != nil {
			return zerr.With(err, "key", key)
		}
	}
	return nil
}

// Digest returns the xxhash64 digest of code as 16 hex digits.
func Digest(code string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(code))
}

// resolveTarget maps an export key to a path under outDir.
func resolveTarget(outDir, key string) (string, error) {
	target := filepath.Join(outDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(outDir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrOutputPathOutsideRoot, "key", key)
	}
	return target, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactCreateFailed.Error())
	}
	//nolint:gosec // path is validated by resolveTarget
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	return nil
}

// removeFile deletes path and any directories it leaves empty below outDir.
func removeFile(outDir, path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error())
	}

	outDir = filepath.Clean(outDir)
	for dir := filepath.Dir(path); dir != outDir && strings.HasPrefix(dir, outDir); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	return nil
}

var _ ports.ArtifactStore = (*Store)(nil)
