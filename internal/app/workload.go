package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/five82/tracepanel/internal/tracelog"
)

const defaultWorkloadInterval = 2 * time.Second

// StartWorkload launches a background goroutine that runs the demo workload
// at a fixed cadence. It returns immediately; the returned channel is closed
// once the goroutine has stopped after ctx is cancelled.
func StartWorkload(ctx context.Context, l *loggers, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = defaultWorkloadInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for run := 1; ; run++ {
			runWorkload(ctx, l, run)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}

// runWorkload emits one event per level from nested spans, through every
// logger front end. The inner span gains an attribute after it started, and
// the closing event runs after the inner span ended so it only carries the
// outer span.
func runWorkload(ctx context.Context, l *loggers, run int) {
	ctx, outer := l.tracer.Start(ctx, "warp_log",
		trace.WithAttributes(attribute.Int("a", 3), attribute.String("b", "9")))
	defer outer.End()

	l.slog.InfoContext(ctx, "starting demo run", "run", run)

	inner := func() {
		ctx, span := l.tracer.Start(ctx, "log_fn")
		defer span.End()

		l.collector.SetAttributes(ctx, attribute.String("c", "recorded later"))

		l.logrus.WithContext(ctx).WithField("step", "probe").Trace("probing cache")
		l.zap.Debug("cache state", tracelog.ZapContext(ctx), zap.Int("entries", 128), zap.Bool("warm", run > 1))
		l.slog.InfoContext(ctx, "request served", "route", "/items", "status", 200)
		l.logrus.WithContext(ctx).WithFields(logrus.Fields{"disk": "/var", "used": "91%"}).Warn("disk almost full")
		l.zap.Error("upstream failed", tracelog.ZapContext(ctx), zap.Error(errors.New("connection reset by peer")))

		l.slog.DebugContext(ctx, strings.Repeat("a long message that keeps going ", 8))
		l.slog.InfoContext(ctx, "multi-line message\nsecond line\nthird line")
	}
	inner()

	l.slog.InfoContext(ctx, "demo run finished", "run", run)
}
