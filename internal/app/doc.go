// Package app is the composition root for tracepanel.
//
// # Startup
//
//  1. Load the config (~/.config/tracepanel/config.toml plus TRACEPANEL_*
//     overrides) and the UI preferences.
//  2. Create the tracelog collector and log; apply the configured labels and
//     initial filter.
//  3. Build slog, zap and logrus loggers and an OpenTelemetry tracer provider
//     on top of the collector. The slog logger becomes the process default,
//     so the application's own diagnostics appear in the panel.
//  4. Register the collector metrics and, when metrics_addr is set, serve
//     them on /metrics.
//  5. Start the demo workload when enabled.
//  6. Run the TUI and block until the user exits or the context is cancelled.
//
// # Components
//
//   - app.go: Run and Options
//   - loggers.go: logger front ends and level mapping
//   - workload.go: the periodic demo workload
//   - metrics.go: the Prometheus listener
//
// # Demo Workload
//
// Each run opens a "warp_log" span with attributes a and b, then a nested
// "log_fn" span that gains attribute c after it started. Inside it one event
// per level is emitted through a different front end, followed by a long
// message and a multi-line message. A final event after the inner span ends
// only carries the outer span.
package app
