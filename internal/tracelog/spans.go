package tracelog

import (
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// SpanID identifies a span. It is the OpenTelemetry span identity so spans
// started through an otel tracer need no translation.
type SpanID = trace.SpanID

// spanEntry holds the mutable state of one open span.
type spanEntry struct {
	name   string
	fields Fields
	// lineage lists the ancestors from the root down to the direct parent.
	lineage []SpanID
}

// spanTable tracks the fields of open spans. Writers (open, record, close)
// take the write lock; event emission reads one entry at a time.
type spanTable struct {
	mu    sync.RWMutex
	spans map[SpanID]*spanEntry
}

func newSpanTable() *spanTable {
	return &spanTable{spans: make(map[SpanID]*spanEntry)}
}

func (t *spanTable) open(id, parent SpanID, name string, fields Fields) {
	if !id.IsValid() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	// A parent missing from the table contributes only itself; its own
	// ancestors are unknown once it has closed.
	var lineage []SpanID
	if parent.IsValid() {
		if p, ok := t.spans[parent]; ok {
			lineage = make([]SpanID, 0, len(p.lineage)+1)
			lineage = append(lineage, p.lineage...)
		}
		lineage = append(lineage, parent)
	}

	entry, ok := t.spans[id]
	if !ok {
		entry = &spanEntry{fields: Fields{}}
		t.spans[id] = entry
	}
	entry.name = name
	entry.lineage = lineage
	for k, v := range fields {
		entry.fields[k] = v
	}
}

func (t *spanTable) record(id SpanID, fields Fields) {
	if !id.IsValid() || len(fields) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	// Unknown ids are either closed or were never opened here.
	entry, ok := t.spans[id]
	if !ok {
		return
	}
	for k, v := range fields {
		entry.fields[k] = v
	}
}

func (t *spanTable) close(id SpanID) {
	t.mu.Lock()
	delete(t.spans, id)
	t.mu.Unlock()
}

// snapshot copies one span's name, fields and lineage.
func (t *spanTable) snapshot(id SpanID) (SpanFields, []SpanID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, ok := t.spans[id]
	if !ok {
		return SpanFields{}, nil, false
	}
	return SpanFields{Name: entry.name, Fields: cloneFields(entry.fields)}, entry.lineage, true
}

// chain returns the span snapshots from the root down to leaf. Spans that
// have already closed are skipped.
func (t *spanTable) chain(leaf SpanID) []SpanFields {
	if !leaf.IsValid() {
		return nil
	}
	leafFields, lineage, ok := t.snapshot(leaf)
	if !ok {
		return nil
	}

	out := make([]SpanFields, 0, len(lineage)+1)
	for _, id := range lineage {
		if sf, _, ok := t.snapshot(id); ok {
			out = append(out, sf)
		}
	}
	return append(out, leafFields)
}

func (t *spanTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.spans)
}
