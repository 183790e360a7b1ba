package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutIDWidth is the minimum width to show the recipe id column.
	LayoutIDWidth = 60
)

// Chrome heights: header, command bar and status line.
const (
	headerLines = 2
	footerLines = 1
)

// Log overlay limits.
const (
	// LogTailLines is the number of log lines shown in the log overlay.
	LogTailLines = 500
)

// Timing constants.
const (
	// SlowRequestThreshold marks requests shown with a warning color.
	SlowRequestThreshold = 2 * time.Second
)
