package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/tracepanel/internal/config"
	"github.com/five82/tracepanel/internal/prefs"
	"github.com/five82/tracepanel/internal/tracelog"
	"github.com/five82/tracepanel/internal/ui"
)

// Options configure the tracepanel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tracepanel/prefs.toml
	// Interval overrides demo.interval when positive.
	Interval time.Duration
	// NoDemo disables the demo workload regardless of the config.
	NoDemo bool
}

// Run boots the tracepanel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, prefsErr := prefs.Load(opts.PrefsPath)

	collector, panel := tracelog.New(cfg.Capacity)
	panel.Display = cfg.Labels
	panel.Filter = cfg.Filter

	l := newLoggers(collector, cfg.LogLevel)
	defer func() { _ = l.Shutdown(context.Background()) }()

	previous := slog.Default()
	slog.SetDefault(l.slog)
	defer slog.SetDefault(previous)

	// Cancelled before the deferred teardown above, so nothing is still
	// logging when the loggers shut down.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if prefsErr != nil {
		l.slog.Warn("preferences unreadable, using defaults", "error", prefsErr)
	}

	reg := prometheus.NewRegistry()
	if _, err := tracelog.NewMetrics(collector, reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		if _, err := serveMetrics(ctx, cfg.MetricsAddr, reg, l.slog); err != nil {
			l.slog.Error("metrics disabled", "error", err)
		}
	}

	if cfg.Demo.Enabled && !opts.NoDemo {
		interval := cfg.Demo.Interval
		if opts.Interval > 0 {
			interval = opts.Interval
		}
		done := StartWorkload(ctx, l, interval)
		defer func() {
			cancel()
			<-done
		}()
	}

	l.slog.Info("tracepanel started", "capacity", cfg.Capacity, "level", cfg.LogLevel.String())

	uiOpts := ui.Options{
		Context:   ctx,
		Log:       panel,
		Collector: collector,
		ThemeName: userPrefs.Theme,
		View:      userPrefs.View,
		PrefsPath: opts.PrefsPath,
		Logger:    l.slog,
	}
	return ui.Run(uiOpts)
}
