package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutSpanWidth is the minimum width to show the span column.
	LayoutSpanWidth = 120
)

// Timing constants.
const (
	// DefaultPollTick is how often the log panel drains the collector.
	DefaultPollTick = 250 * time.Millisecond

	// FlashDuration is how long the header highlights a new warning or error.
	FlashDuration = 3 * time.Second
)

// chromeHeight is the number of rows used by the header, the command bar,
// the box borders and the status line under the box.
const chromeHeight = 5
