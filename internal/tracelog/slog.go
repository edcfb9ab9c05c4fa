package tracelog

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/trace"
)

// HandlerOptions configure a Handler.
type HandlerOptions struct {
	// Level is the minimum slog level captured. Defaults to slog.LevelDebug.
	Level slog.Leveler
	// Next, when set, also receives every record.
	Next slog.Handler
}

// Handler is a slog.Handler that feeds a Collector. The active span is taken
// from the OpenTelemetry span in the record's context.
type Handler struct {
	collector *Collector
	level     slog.Leveler
	next      slog.Handler
	attrs     []slog.Attr
	groups    []string
}

// NewHandler returns a handler writing into c.
func NewHandler(c *Collector, opts *HandlerOptions) *Handler {
	h := &Handler{collector: c, level: slog.LevelDebug}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.next = opts.Next
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level.Level() {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level.Level() {
		h.capture(ctx, r)
	}
	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *Handler) capture(ctx context.Context, r slog.Record) {
	fields := make(Fields, len(h.attrs)+r.NumAttrs()+1)
	prefix := groupPrefix(h.groups)
	for _, a := range h.attrs {
		addAttr(fields, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, prefix, a)
		return true
	})
	fields[MessageKey] = r.Message

	id := trace.SpanFromContext(ctx).SpanContext().SpanID()
	h.collector.Emit(LevelFromSlog(r.Level), id, fields)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	prefix := groupPrefix(h.groups)
	clone.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}

// LevelFromSlog maps slog levels onto the five capture levels. Anything
// below slog.LevelDebug is Trace.
func LevelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return LevelTrace
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}

func groupPrefix(groups []string) string {
	var prefix string
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

func addAttr(fields Fields, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			addAttr(fields, sub, ga)
		}
		return
	}
	fields[prefix+a.Key] = slogValueString(a.Value)
}

func slogValueString(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		return stringify(v.Any())
	}
	return v.String()
}
