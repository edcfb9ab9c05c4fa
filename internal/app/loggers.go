package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/tracepanel/internal/tracelog"
)

// slogTrace is the slog level below Debug that maps to tracelog.LevelTrace.
const slogTrace = slog.LevelDebug - 4

// loggers is every instrumentation front end wired to one collector.
type loggers struct {
	collector *tracelog.Collector
	slog      *slog.Logger
	zap       *zap.Logger
	logrus    *logrus.Logger
	provider  *sdktrace.TracerProvider
	tracer    trace.Tracer
}

// newLoggers builds slog, zap and logrus loggers plus an OpenTelemetry tracer
// provider that all feed c. Events below threshold are not captured.
func newLoggers(c *tracelog.Collector, threshold tracelog.Level) *loggers {
	sl := slog.New(tracelog.NewHandler(c, &tracelog.HandlerOptions{Level: slogLevel(threshold)}))

	zl := zap.New(tracelog.NewZapCore(c, zapLevel(threshold))).Named("workload")

	// The terminal belongs to the UI; logrus only writes through the hook.
	lr := logrus.New()
	lr.SetOutput(io.Discard)
	lr.SetLevel(logrusLevel(threshold))
	lr.AddHook(tracelog.NewHook(c, logrus.TraceLevel))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(tracelog.NewSpanProcessor(c)),
	)

	return &loggers{
		collector: c,
		slog:      sl,
		zap:       zl,
		logrus:    lr,
		provider:  tp,
		tracer:    tp.Tracer("github.com/five82/tracepanel/internal/app"),
	}
}

// Shutdown flushes zap and stops the tracer provider.
func (l *loggers) Shutdown(ctx context.Context) error {
	_ = l.zap.Sync()
	return l.provider.Shutdown(ctx)
}

func slogLevel(l tracelog.Level) slog.Level {
	switch l {
	case tracelog.LevelTrace:
		return slogTrace
	case tracelog.LevelDebug:
		return slog.LevelDebug
	case tracelog.LevelInfo:
		return slog.LevelInfo
	case tracelog.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// zapLevel maps l onto zap, which has no trace level.
func zapLevel(l tracelog.Level) zapcore.Level {
	switch l {
	case tracelog.LevelTrace, tracelog.LevelDebug:
		return zapcore.DebugLevel
	case tracelog.LevelInfo:
		return zapcore.InfoLevel
	case tracelog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func logrusLevel(l tracelog.Level) logrus.Level {
	switch l {
	case tracelog.LevelTrace:
		return logrus.TraceLevel
	case tracelog.LevelDebug:
		return logrus.DebugLevel
	case tracelog.LevelInfo:
		return logrus.InfoLevel
	case tracelog.LevelWarn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}
