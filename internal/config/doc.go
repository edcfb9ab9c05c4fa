// Package config loads the tracepanel configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file at the given path, or ~/.config/tracepanel/config.toml
//  3. TRACEPANEL_* environment variables
//
// A missing file is not an error. Blank string values in the file keep the
// defaults; tilde paths are expanded.
//
// # TOML Format
//
//	capacity = 1000          # queue and ring size
//	log_level = "trace"      # lowest level forwarded by the app loggers
//	metrics_addr = ""        # e.g. "127.0.0.1:9464" to serve /metrics
//
//	[labels]                 # panel labels
//	filter = "Filter"
//	level = "Level"
//	time = "Time"
//	span_data = "Span Data"
//	data = "Data"
//	message = "Message"
//
//	[filter]                 # initial panel filter
//	level = "info"
//	span_data = ""
//	data = ""
//	message = ""
//
//	[demo]
//	enabled = true
//	interval = "2s"
//
// # Environment
//
// TRACEPANEL_CAPACITY, TRACEPANEL_LOG_LEVEL, TRACEPANEL_METRICS_ADDR,
// TRACEPANEL_DEMO_ENABLED and TRACEPANEL_DEMO_INTERVAL override the file.
//
// # Error Handling
//
// Load returns errors for unreadable or malformed files, unknown level
// names, unparsable durations and non-positive capacity or interval.
package config
