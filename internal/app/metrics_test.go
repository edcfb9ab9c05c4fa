package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tracepanel/internal/tracelog"
)

func TestServeMetrics(t *testing.T) {
	c, _ := tracelog.New(4)
	reg := prometheus.NewRegistry()
	_, err := tracelog.NewMetrics(c, reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	addr, err := serveMetrics(ctx, "127.0.0.1:0", reg, logger)
	require.NoError(t, err)

	c.Emit(tracelog.LevelInfo, tracelog.SpanID{}, tracelog.Fields{tracelog.MessageKey: "hello"})

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "tracepanel_records_delivered_total 1")
	assert.Contains(t, string(body), "tracepanel_records_pending 1")
}

func TestServeMetrics_BadAddress(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := serveMetrics(context.Background(), "not-an-address", prometheus.NewRegistry(), logger)
	assert.ErrorContains(t, err, "metrics listen")
}
