package routecache

import (
	"context"

	"go.trai.ch/apiroutes/internal/core/domain"
)

// Operation is a pending or settled route build.
//
// Every caller that asks the cache for the same file path while the entry is
// cached receives the same *Operation, so they all observe one outcome.
type Operation struct {
	filePath string
	done     chan struct{}
	result   domain.BuildResult
	err      error
}

func newOperation(filePath string) *Operation {
	return &Operation{
		filePath: filePath,
		done:     make(chan struct{}),
	}
}

// FilePath returns the route file this operation builds.
func (o *Operation) FilePath() string {
	return o.filePath
}

// Done returns a channel that is closed once the operation has settled.
func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation settles or ctx is done.
// Cancelling ctx stops the wait only; the build itself keeps running.
func (o *Operation) Wait(ctx context.Context) (domain.BuildResult, error) {
	select {
	case <-o.done:
		return o.result, o.err
	case <-ctx.Done():
		return domain.BuildResult{}, ctx.Err()
	}
}

// settle records the outcome. It must be called exactly once.
func (o *Operation) settle(result domain.BuildResult, err error) {
	o.result = result
	o.err = err
	close(o.done)
}
