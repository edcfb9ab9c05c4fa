package tracelog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// SpanProcessor mirrors the span lifecycle of an OpenTelemetry tracer
// provider into a Collector. Register it with sdktrace.WithSpanProcessor.
type SpanProcessor struct {
	collector *Collector
}

var _ sdktrace.SpanProcessor = (*SpanProcessor)(nil)

// NewSpanProcessor returns a processor feeding c.
func NewSpanProcessor(c *Collector) *SpanProcessor {
	return &SpanProcessor{collector: c}
}

// OnStart records the span name, parent and initial attributes.
func (p *SpanProcessor) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	p.collector.OpenSpan(
		s.SpanContext().SpanID(),
		s.Parent().SpanID(),
		s.Name(),
		attributeFields(s.Attributes()),
	)
}

// OnEnd drops the span's fields.
func (p *SpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	p.collector.CloseSpan(s.SpanContext().SpanID())
}

// Shutdown implements sdktrace.SpanProcessor.
func (p *SpanProcessor) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (p *SpanProcessor) ForceFlush(context.Context) error { return nil }

// SetAttributes sets kv on the span active in ctx and records them in the
// collector straight away. Attributes set on a span directly after it
// started are not seen by the collector.
func (c *Collector) SetAttributes(ctx context.Context, kv ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(kv...)
	c.RecordSpan(span.SpanContext().SpanID(), attributeFields(kv))
}

func attributeFields(kv []attribute.KeyValue) Fields {
	if len(kv) == 0 {
		return nil
	}
	fields := make(Fields, len(kv))
	for _, a := range kv {
		fields[string(a.Key)] = a.Value.Emit()
	}
	return fields
}
