package ui

import (
	"maps"
	"slices"
	"strings"

	"github.com/five82/tracepanel/internal/tracelog"
)

// formatFields renders fields as space-separated k=v pairs in key order.
func formatFields(f tracelog.Fields) string {
	if len(f) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		parts = append(parts, k+"="+f[k])
	}
	return strings.Join(parts, " ")
}

// formatSpans renders the span chain root first, e.g. "outer{a=1}:inner".
func formatSpans(spans []tracelog.SpanFields) string {
	if len(spans) == 0 {
		return ""
	}
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if len(s.Fields) == 0 {
			parts = append(parts, s.Name)
			continue
		}
		parts = append(parts, s.Name+"{"+formatFields(s.Fields)+"}")
	}
	return strings.Join(parts, ":")
}

// formatRecord renders a record as plain text. Multi-line messages keep
// their line breaks; every continuation line is indented.
func formatRecord(r tracelog.Record) string {
	parts := []string{r.Time, padRight(r.Level.String(), 5)}
	if spans := formatSpans(r.Spans); spans != "" {
		parts = append(parts, spans)
	}
	if fields := formatFields(r.Fields); fields != "" {
		parts = append(parts, fields)
	}
	header := strings.Join(parts, " ")
	if r.Message == "" {
		return header
	}
	msg := strings.ReplaceAll(r.Message, "\n", "\n    ")
	return header + " – " + msg
}
