package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sigil/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is a span processor translating span lifecycles into step sink
// calls. The same bridge drives the interactive status area and the plain
// progress printer; only the sink differs.
type Bridge struct {
	sink ports.StepSink
}

// NewBridge creates a bridge feeding sink.
func NewBridge(sink ports.StepSink) *Bridge {
	return &Bridge{sink: sink}
}

// OnStart reports the beginning of a step.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.sink == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.sink.OnStepStart(sc.SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd replays the span's log events and reports completion. Replaying at
// span end keeps the processor contract simple; tool output still reaches
// the terminal live through the logger.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.sink == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	spanID := sc.SpanID().String()
	for _, event := range s.Events() {
		if event.Name != logEventName {
			continue
		}
		for _, attr := range event.Attributes {
			if string(attr.Key) == logMessageKey {
				b.sink.OnStepLog(spanID, []byte(attr.Value.AsString()))
			}
		}
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "step failed"
		}
		err = errors.New(desc)
	}

	b.sink.OnStepEnd(spanID, s.EndTime(), err)
}

// ForceFlush implements sdktrace.SpanProcessor.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown implements sdktrace.SpanProcessor.
func (b *Bridge) Shutdown(context.Context) error { return nil }
