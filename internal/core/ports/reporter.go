package ports

import (
	"context"

	"go.trai.ch/apiroutes/internal/core/domain"
)

// ErrorReporter renders diagnostics for failed route builds.
// Reporting never alters control flow.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type ErrorReporter interface {
	Report(ctx context.Context, failure domain.BuildFailure)
}
