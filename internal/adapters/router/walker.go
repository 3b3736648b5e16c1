package router

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// ShouldSkipDir reports whether a directory with the given name is never
// searched for routes or watched for changes.
func ShouldSkipDir(name string) bool {
	if name == "node_modules" {
		return true
	}
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// WalkFiles yields every regular file below root, skipping ignored directories.
// A walk error is yielded once and ends the iteration.
func WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && ShouldSkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}
