package tracelog

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const zapContextKey = "tracelog.context"

// ZapContext attaches ctx to a zap entry so the core can find the active
// span. Other cores ignore the field.
func ZapContext(ctx context.Context) zap.Field {
	return zap.Field{Key: zapContextKey, Type: zapcore.SkipType, Interface: ctx}
}

type zapCore struct {
	zapcore.LevelEnabler
	collector *Collector
	fields    []zapcore.Field
	ctx       context.Context
}

// NewZapCore returns a zapcore.Core feeding c. Combine it with other cores
// through zapcore.NewTee.
func NewZapCore(c *Collector, enab zapcore.LevelEnabler) zapcore.Core {
	if enab == nil {
		enab = zapcore.DebugLevel
	}
	return &zapCore{LevelEnabler: enab, collector: c}
}

func (z *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *z
	clone.fields = make([]zapcore.Field, 0, len(z.fields)+len(fields))
	clone.fields = append(clone.fields, z.fields...)
	for _, f := range fields {
		if ctx, ok := contextField(f); ok {
			clone.ctx = ctx
			continue
		}
		clone.fields = append(clone.fields, f)
	}
	return &clone
}

func (z *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if z.Enabled(ent.Level) {
		return ce.AddCore(ent, z)
	}
	return ce
}

func (z *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	ctx := z.ctx
	for _, f := range z.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		if c, ok := contextField(f); ok {
			ctx = c
			continue
		}
		f.AddTo(enc)
	}

	out := make(Fields, len(enc.Fields)+2)
	flattenZap(out, "", enc.Fields)
	if ent.LoggerName != "" {
		out["logger"] = ent.LoggerName
	}
	out[MessageKey] = ent.Message

	var span SpanID
	if ctx != nil {
		span = trace.SpanContextFromContext(ctx).SpanID()
	}
	z.collector.Emit(LevelFromZap(ent.Level), span, out)
	return nil
}

func (z *zapCore) Sync() error { return nil }

// LevelFromZap maps zap levels onto capture levels; DPanic and above are Error.
func LevelFromZap(l zapcore.Level) Level {
	switch {
	case l < zapcore.InfoLevel:
		return LevelDebug
	case l < zapcore.WarnLevel:
		return LevelInfo
	case l < zapcore.ErrorLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

func contextField(f zapcore.Field) (context.Context, bool) {
	if f.Key != zapContextKey || f.Type != zapcore.SkipType {
		return nil, false
	}
	ctx, ok := f.Interface.(context.Context)
	return ctx, ok
}

func flattenZap(out Fields, prefix string, m map[string]any) {
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			flattenZap(out, prefix+k+".", nested)
			continue
		}
		out[prefix+k] = stringify(v)
	}
}
