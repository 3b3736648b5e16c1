// Package reporter renders route build failures for the developer.
package reporter

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reporter implements ports.ErrorReporter by logging the failure and its cause chain.
type Reporter struct {
	logger ports.Logger
}

// New creates a Reporter.
func New(logger ports.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report logs failure with the route path relative to the project root.
func (r *Reporter) Report(_ context.Context, failure domain.BuildFailure) {
	if failure.Err == nil {
		return
	}

	err := zerr.Wrap(failure.Err, "failed to bundle API route")
	r.logger.Error(zerr.With(err, "route", routeName(failure.ProjectRoot, failure.FilePath)))
}

func routeName(projectRoot, filePath string) string {
	if projectRoot == "" {
		return filePath
	}
	rel, err := filepath.Rel(projectRoot, filePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filePath
	}
	return filepath.ToSlash(rel)
}

var _ ports.ErrorReporter = (*Reporter)(nil)
