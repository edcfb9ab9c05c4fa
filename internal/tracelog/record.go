package tracelog

import (
	"maps"
	"strings"
)

const (
	// MessageKey is the reserved field carrying an event's message.
	MessageKey = "message"

	// TimeLayout formats record timestamps with millisecond precision.
	TimeLayout = "2006-01-02 15:04:05.000"
)

// Fields maps a field name to its stringified value.
type Fields map[string]string

// Contains reports whether any key or value contains needle.
func (f Fields) Contains(needle string) bool {
	for k, v := range f {
		if strings.Contains(k, needle) || strings.Contains(v, needle) {
			return true
		}
	}
	return false
}

// SpanFields is a snapshot of one span's fields at the time an event fired.
type SpanFields struct {
	Name   string
	Fields Fields
}

// Record is one captured event. Records are not modified after delivery.
type Record struct {
	Level   Level
	Time    string
	Message string
	Fields  Fields
	// Spans runs from the root span to the innermost one.
	Spans []SpanFields
}

// SpanMatches reports whether a span name, field key or field value contains needle.
func (r Record) SpanMatches(needle string) bool {
	for _, span := range r.Spans {
		if strings.Contains(span.Name, needle) || span.Fields.Contains(needle) {
			return true
		}
	}
	return false
}

func cloneFields(f Fields) Fields {
	if len(f) == 0 {
		return Fields{}
	}
	return maps.Clone(f)
}
