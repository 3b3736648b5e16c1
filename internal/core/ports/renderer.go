package ports

import (
	"time"
)

// Renderer presents build progress to the user.
// It is fed by the telemetry bridge so the cache never talks to the terminal directly.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnBuildStart is called when a route build begins.
	// spanID identifies the build, name is the human-readable span name.
	OnBuildStart(spanID, name string, startTime time.Time)

	// OnBuildComplete is called when a route build settles.
	// err is nil if the build succeeded.
	OnBuildComplete(spanID string, endTime time.Time, err error)

	// Flush writes any buffered output.
	Flush() error
}
