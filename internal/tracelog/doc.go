// Package tracelog captures structured log events and span context for the
// log panel.
//
// # Overview
//
// The pipeline has two halves joined by a bounded queue:
//
//	producers (any goroutine)                 consumer (UI goroutine)
//	┌───────────────────────────┐            ┌──────────────────────────┐
//	│ slog Handler              │            │ Log.Update()             │
//	│ zap core / logrus Hook    ├─> Collector ─> Queue ─> ring of Records │
//	│ otel SpanProcessor        │            │ Log.Visible() + Filter   │
//	└───────────────────────────┘            └──────────────────────────┘
//
// The Collector keeps a table of open spans and their fields. Span start,
// attribute updates and span end arrive from the OpenTelemetry SDK through
// SpanProcessor (or directly through OpenSpan, RecordSpan and CloseSpan).
// When an event is emitted, the fields of every still-open ancestor of the
// active span are copied into the Record, root first.
//
// # Delivery
//
// Queue.Push never blocks. A full queue evicts its oldest record to admit the
// new one, and the loss is counted (Collector.Dropped). The Log drains the
// queue once per UI tick with Update, which returns the most severe level it
// saw so the host can flash an indicator.
//
// # Ring policy
//
// The Log never holds more than its capacity. A drained batch as large as the
// capacity replaces the ring; a smaller batch pushes out exactly as many of
// the oldest entries as needed to make room.
//
// # Filtering
//
// Filter is applied at render time. All criteria must hold; substring
// criteria are literal and case-sensitive.
//
// # Usage
//
//	collector, panel := tracelog.New(500)
//	slog.SetDefault(slog.New(tracelog.NewHandler(collector, nil)))
//	tp := sdktrace.NewTracerProvider(
//		sdktrace.WithSpanProcessor(tracelog.NewSpanProcessor(collector)),
//	)
//
//	// on every UI tick
//	if worst, ok := panel.Update(); ok && worst >= tracelog.LevelWarn {
//		flash(worst)
//	}
package tracelog
