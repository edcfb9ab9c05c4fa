package ui

import (
	"strings"
	"testing"

	"github.com/five82/tracepanel/internal/tracelog"
)

func TestFormatFields(t *testing.T) {
	if got := formatFields(nil); got != "" {
		t.Fatalf("formatFields(nil) = %q, want empty", got)
	}
	got := formatFields(tracelog.Fields{"b": "2", "a": "1"})
	if got != "a=1 b=2" {
		t.Fatalf("formatFields = %q, want keys in order", got)
	}
}

func TestFormatSpans(t *testing.T) {
	spans := []tracelog.SpanFields{
		{Name: "warp_log", Fields: tracelog.Fields{"a": "1"}},
		{Name: "log_fn"},
	}
	if got := formatSpans(spans); got != "warp_log{a=1}:log_fn" {
		t.Fatalf("formatSpans = %q", got)
	}
}

func TestFormatRecord(t *testing.T) {
	r := tracelog.Record{
		Level:   tracelog.LevelWarn,
		Time:    "2025-12-13 05:11:12.345",
		Message: "first\nsecond",
		Fields:  tracelog.Fields{"k": "v"},
		Spans:   []tracelog.SpanFields{{Name: "outer", Fields: tracelog.Fields{"c": "3"}}},
	}
	got := formatRecord(r)
	if want := "2025-12-13 05:11:12.345 WARN  outer{c=3} k=v – first"; !strings.HasPrefix(got, want) {
		t.Fatalf("formatRecord = %q, want prefix %q", got, want)
	}
	if !strings.HasSuffix(got, "\n    second") {
		t.Fatalf("formatRecord lost the continuation line: %q", got)
	}
}

func TestFormatRecord_NoMessage(t *testing.T) {
	r := tracelog.Record{Level: tracelog.LevelError, Time: "t"}
	if got := formatRecord(r); got != "t ERROR" {
		t.Fatalf("formatRecord = %q, want %q", got, "t ERROR")
	}
}
