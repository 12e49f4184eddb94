// Package messages defines Bubbletea message types for the TUI.
// Messages carry job events and timer ticks into the Elm update loop.
package messages

import (
	"time"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// JobEvent wraps one item read from the job's event stream.
type JobEvent struct {
	Event domain.JobEvent
}

// StreamClosed is sent when the job's event stream has been fully drained.
type StreamClosed struct{}

// Tick refreshes the elapsed time display.
type Tick struct {
	Time time.Time
}

// TickInterval is how often the elapsed time is redrawn.
const TickInterval = 250 * time.Millisecond
