package tracelog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newTracer(t *testing.T, c *Collector) *sdktrace.TracerProvider {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewSpanProcessor(c)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp
}

func TestHandler_CapturesAttrsGroupsAndSpans(t *testing.T) {
	c, log := newTestCollector(t, 8)
	tracer := newTracer(t, c).Tracer("test")
	logger := slog.New(NewHandler(c, &HandlerOptions{Level: slog.LevelDebug}))

	ctx, outer := tracer.Start(context.Background(), "warp_log")
	ctx, inner := tracer.Start(ctx, "log_fn", trace.WithAttributes(attribute.String("a", "field a"), attribute.Int("b", 2)))

	logger.With("svc", "api").WithGroup("req").InfoContext(ctx, " before ", "with", "start", slog.Group("peer", "ip", "10.0.0.1"))
	c.SetAttributes(ctx, attribute.String("c", "field c"))
	logger.WarnContext(ctx, "after", "err", errors.New("late"))
	inner.End()
	outer.End()

	log.Update()
	recs := log.Records()
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, LevelInfo, first.Level)
	assert.Equal(t, "before", first.Message)
	assert.Equal(t, Fields{"svc": "api", "req.with": "start", "req.peer.ip": "10.0.0.1"}, first.Fields)
	require.Len(t, first.Spans, 2)
	assert.Equal(t, "warp_log", first.Spans[0].Name)
	assert.Equal(t, Fields{"a": "field a", "b": "2"}, first.Spans[1].Fields)

	second := recs[1]
	assert.Equal(t, LevelWarn, second.Level)
	assert.Equal(t, "late", second.Fields["err"])
	assert.Equal(t, "field c", second.Spans[1].Fields["c"], "attributes recorded after start are picked up")

	assert.Zero(t, c.OpenSpans(), "ended spans are forgotten")
}

func TestHandler_LevelThresholdAndNext(t *testing.T) {
	c, log := newTestCollector(t, 8)
	var buf bytes.Buffer
	next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewHandler(c, &HandlerOptions{Level: slog.LevelWarn, Next: next}))

	logger.Debug("quiet")
	logger.Error("loud")

	log.Update()
	assert.Equal(t, []string{"loud"}, messages(log.Records()))
	assert.Contains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestLevelFromSlog(t *testing.T) {
	assert.Equal(t, LevelTrace, LevelFromSlog(slog.LevelDebug-4))
	assert.Equal(t, LevelDebug, LevelFromSlog(slog.LevelDebug))
	assert.Equal(t, LevelInfo, LevelFromSlog(slog.LevelInfo+1))
	assert.Equal(t, LevelWarn, LevelFromSlog(slog.LevelWarn))
	assert.Equal(t, LevelError, LevelFromSlog(slog.LevelError+4))
}

func TestCollectorSetAttributes(t *testing.T) {
	c, log := newTestCollector(t, 4)
	tracer := newTracer(t, c).Tracer("test")
	ctx, span := tracer.Start(context.Background(), "job")
	defer span.End()

	c.SetAttributes(ctx, attribute.Bool("retry", true))
	slog.New(NewHandler(c, nil)).InfoContext(ctx, "tick")

	r := lastRecord(t, log)
	require.Len(t, r.Spans, 1)
	assert.Equal(t, "true", r.Spans[0].Fields["retry"])
}

func TestHandler_LaterSpanWritesWin(t *testing.T) {
	c, log := newTestCollector(t, 4)
	tracer := newTracer(t, c).Tracer("test")
	ctx, span := tracer.Start(context.Background(), "job")
	defer span.End()

	c.SetAttributes(ctx, attribute.String("late", "yes"))
	c.RecordSpan(span.SpanContext().SpanID(), Fields{"late": "direct"})
	slog.New(NewHandler(c, nil)).InfoContext(ctx, "tick")

	r := lastRecord(t, log)
	require.Len(t, r.Spans, 1)
	assert.Equal(t, Fields{"late": "direct"}, r.Spans[0].Fields)
}

func TestLoggersSeeSameSpanFields(t *testing.T) {
	c, log := newTestCollector(t, 8)
	tracer := newTracer(t, c).Tracer("test")
	ctx, span := tracer.Start(context.Background(), "job")
	defer span.End()
	c.SetAttributes(ctx, attribute.String("late", "yes"))

	slog.New(NewHandler(c, nil)).InfoContext(ctx, "from slog")
	zap.New(NewZapCore(c, zapcore.DebugLevel)).Info("from zap", ZapContext(ctx))
	lr := logrus.New()
	lr.SetOutput(io.Discard)
	lr.AddHook(NewHook(c, logrus.TraceLevel))
	lr.WithContext(ctx).Info("from logrus")

	log.Update()
	recs := log.Records()
	require.Len(t, recs, 3)
	for _, r := range recs {
		require.Len(t, r.Spans, 1, r.Message)
		assert.Equal(t, Fields{"late": "yes"}, r.Spans[0].Fields, r.Message)
	}
}

func TestZapCore(t *testing.T) {
	c, log := newTestCollector(t, 8)
	tracer := newTracer(t, c).Tracer("test")
	ctx, span := tracer.Start(context.Background(), "zap_span", trace.WithAttributes(attribute.String("k", "v")))
	defer span.End()

	logger := zap.New(NewZapCore(c, zapcore.InfoLevel)).Named("worker").With(zap.String("shard", "7"))
	logger.Debug("dropped")
	logger.Warn("slow", zap.Int("ms", 250), zap.Error(errors.New("timeout")), ZapContext(ctx))
	logger.With(ZapContext(ctx)).Error("failed", zap.Dict("req", zap.String("id", "abc")))

	log.Update()
	recs := log.Records()
	require.Len(t, recs, 2)

	assert.Equal(t, LevelWarn, recs[0].Level)
	assert.Equal(t, "slow", recs[0].Message)
	assert.Equal(t, Fields{"shard": "7", "ms": "250", "error": "timeout", "logger": "worker"}, recs[0].Fields)
	require.Len(t, recs[0].Spans, 1)
	assert.Equal(t, "zap_span", recs[0].Spans[0].Name)

	assert.Equal(t, LevelError, recs[1].Level)
	assert.Equal(t, "abc", recs[1].Fields["req.id"])
	assert.Len(t, recs[1].Spans, 1)
}

func TestLevelFromZap(t *testing.T) {
	assert.Equal(t, LevelDebug, LevelFromZap(zapcore.DebugLevel))
	assert.Equal(t, LevelInfo, LevelFromZap(zapcore.InfoLevel))
	assert.Equal(t, LevelWarn, LevelFromZap(zapcore.WarnLevel))
	assert.Equal(t, LevelError, LevelFromZap(zapcore.DPanicLevel))
}

func TestLogrusHook(t *testing.T) {
	c, log := newTestCollector(t, 8)
	tracer := newTracer(t, c).Tracer("test")
	ctx, span := tracer.Start(context.Background(), "logrus_span")
	defer span.End()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	logger.SetLevel(logrus.TraceLevel)
	logger.AddHook(NewHook(c, logrus.InfoLevel))

	logger.Debug("ignored by hook")
	logger.WithContext(ctx).WithField("attempt", 3).Info("retrying")
	logger.WithError(errors.New("gone")).Error("lost")

	log.Update()
	recs := log.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, LevelInfo, recs[0].Level)
	assert.Equal(t, Fields{"attempt": "3"}, recs[0].Fields)
	require.Len(t, recs[0].Spans, 1)
	assert.Equal(t, "logrus_span", recs[0].Spans[0].Name)
	assert.Equal(t, "gone", recs[1].Fields["error"])
	assert.Empty(t, recs[1].Spans)
}

func TestLevelFromLogrus(t *testing.T) {
	assert.Equal(t, LevelTrace, LevelFromLogrus(logrus.TraceLevel))
	assert.Equal(t, LevelWarn, LevelFromLogrus(logrus.WarnLevel))
	assert.Equal(t, LevelError, LevelFromLogrus(logrus.FatalLevel))
}

func TestMetrics(t *testing.T) {
	c, log := New(2)
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(c, reg)
	require.NoError(t, err)

	c.OpenSpan(sid(1), SpanID{}, "s", nil)
	for range 5 {
		c.Emit(LevelInfo, SpanID{}, nil)
	}

	assert.Equal(t, 5.0, testutil.ToFloat64(m.Delivered))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Dropped))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Pending))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenSpans))

	log.Update()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Pending))

	_, err = NewMetrics(c, reg)
	assert.Error(t, err, "duplicate registration")
}
