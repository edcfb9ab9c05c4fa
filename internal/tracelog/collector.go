package tracelog

import (
	"strings"
	"time"
)

// Collector is the producer side of the capture pipeline. It tracks open
// span fields and turns events into Records on the delivery queue.
//
// All methods are safe for concurrent use and never block or panic into the
// caller; delivery is best effort.
type Collector struct {
	spans *spanTable
	queue *Queue
	now   func() time.Time
}

// New builds a collector and the Log that consumes its records. Both hold at
// most capacity records.
func New(capacity int) (*Collector, *Log) {
	queue := NewQueue(capacity)
	c := &Collector{
		spans: newSpanTable(),
		queue: queue,
		now:   time.Now,
	}
	return c, newLog(queue)
}

// OpenSpan starts tracking a span with its initial fields. parent may be the
// zero SpanID for a root span.
func (c *Collector) OpenSpan(id, parent SpanID, name string, fields Fields) {
	c.spans.open(id, parent, name, fields)
}

// RecordSpan merges fields into an open span; later values win per key.
func (c *Collector) RecordSpan(id SpanID, fields Fields) {
	c.spans.record(id, fields)
}

// CloseSpan forgets the span. Events emitted afterwards no longer carry its fields.
func (c *Collector) CloseSpan(id SpanID) {
	c.spans.close(id)
}

// Emit captures an event raised inside span (zero SpanID for none). The
// reserved MessageKey field becomes the record message. Emit takes ownership
// of fields.
func (c *Collector) Emit(level Level, span SpanID, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	message := strings.TrimSpace(fields[MessageKey])
	delete(fields, MessageKey)

	c.queue.Push(Record{
		Level:   level,
		Time:    c.now().Format(TimeLayout),
		Message: message,
		Fields:  fields,
		Spans:   c.spans.chain(span),
	})
}

// OpenSpans returns the number of spans currently tracked.
func (c *Collector) OpenSpans() int { return c.spans.len() }

// Delivered returns how many records reached the queue.
func (c *Collector) Delivered() uint64 { return c.queue.Delivered() }

// Dropped returns how many records were evicted before the Log drained them.
func (c *Collector) Dropped() uint64 { return c.queue.Dropped() }

// Pending returns the number of records waiting for the Log.
func (c *Collector) Pending() int { return c.queue.Len() }
