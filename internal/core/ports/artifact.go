package ports

import "go.trai.ch/apiroutes/internal/core/domain"

// ArtifactStore persists exported routes.
//
//go:generate mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactStore interface {
	// Write stores every valid entry of files under outDir, keyed by export key,
	// and returns the number of files written.
	Write(outDir string, files map[string]domain.BuildResult) (int, error)
}
