package tracelog

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Hook is a logrus hook feeding a Collector. Entries logged through
// logger.WithContext(ctx) are attached to the span active in ctx.
type Hook struct {
	collector *Collector
	levels    []logrus.Level
}

var _ logrus.Hook = (*Hook)(nil)

// NewHook returns a hook capturing every level up to and including lowest
// (logrus orders levels from panic down to trace).
func NewHook(c *Collector, lowest logrus.Level) *Hook {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= lowest {
			levels = append(levels, l)
		}
	}
	return &Hook{collector: c, levels: levels}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level { return h.levels }

// Fire implements logrus.Hook.
func (h *Hook) Fire(e *logrus.Entry) error {
	fields := make(Fields, len(e.Data)+1)
	for k, v := range e.Data {
		fields[k] = stringify(v)
	}
	fields[MessageKey] = e.Message

	var span SpanID
	if e.Context != nil {
		span = trace.SpanContextFromContext(e.Context).SpanID()
	}
	h.collector.Emit(LevelFromLogrus(e.Level), span, fields)
	return nil
}

// LevelFromLogrus maps logrus levels onto capture levels; panic and fatal are Error.
func LevelFromLogrus(l logrus.Level) Level {
	switch l {
	case logrus.TraceLevel:
		return LevelTrace
	case logrus.DebugLevel:
		return LevelDebug
	case logrus.InfoLevel:
		return LevelInfo
	case logrus.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}
