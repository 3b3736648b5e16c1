package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.38.0"
	"go.trai.ch/apiroutes/internal/core/ports"
)

const exceptionEventName = "exception"

// Bridge implements sdktrace.SpanProcessor to forward route build spans to a
// Renderer. Spans of other instrumentation scopes are ignored.
type Bridge struct {
	renderer ports.Renderer
	scope    string
}

// NewBridge returns a Bridge forwarding spans of InstrumentationName.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
		scope:    InstrumentationName,
	}
}

// OnStart reports the start of a build span.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if !b.forwards(s) {
		return
	}
	b.renderer.OnBuildStart(s.SpanContext().SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd reports the outcome of a build span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !b.forwards(s) {
		return
	}
	b.renderer.OnBuildComplete(s.SpanContext().SpanID().String(), s.EndTime(), buildError(s))
}

// ForceFlush flushes the renderer.
func (b *Bridge) ForceFlush(_ context.Context) error {
	if b.renderer == nil {
		return nil
	}
	return b.renderer.Flush()
}

// Shutdown flushes the renderer.
func (b *Bridge) Shutdown(ctx context.Context) error {
	return b.ForceFlush(ctx)
}

func (b *Bridge) forwards(s sdktrace.ReadOnlySpan) bool {
	return b.renderer != nil &&
		s.SpanContext().IsValid() &&
		s.InstrumentationScope().Name == b.scope
}

// buildError returns the failure of an errored span, preferring the message of
// the last recorded exception over the status description.
func buildError(s sdktrace.ReadOnlySpan) error {
	if s.Status().Code != codes.Error {
		return nil
	}

	events := s.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Name != exceptionEventName {
			continue
		}
		for _, kv := range events[i].Attributes {
			if kv.Key == semconv.ExceptionMessageKey && kv.Value.AsString() != "" {
				return errors.New(kv.Value.AsString())
			}
		}
	}

	if desc := s.Status().Description; desc != "" {
		return errors.New(desc)
	}
	return errors.New("build failed")
}
