// Package ui provides the Bubble Tea TUI for finlens.
package ui

import (
	"time"

	"finlens/internal/news"
)

// TickMsg drives the once-a-second interaction cycle: refresh check plus
// countdown redraw. No background fetch loop exists; refreshes are
// opportunistic, triggered only when a cycle notices the interval elapsed.
type TickMsg time.Time

// FetchDone is sent when a fetch attempt finishes. On error the batch is
// nil and the session stays untouched.
type FetchDone struct {
	Batch  []news.Item
	Manual bool
	Err    error
}

// Persisted is sent when the fetched batch has been written to the history
// store.
type Persisted struct {
	NewRows int
	Err     error
}

// AnalysisDone is sent when the completion provider returns, successfully
// or not.
type AnalysisDone struct {
	Content string
	Err     error
}
