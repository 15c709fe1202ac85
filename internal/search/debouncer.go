// Package search coalesces rapid keystrokes into a single delayed
// search request.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SearchFunc is invoked with the query captured at the last keystroke
// once the quiet period has elapsed.
type SearchFunc func(ctx context.Context, query string)

// Debouncer holds a single-slot timer. Each keystroke cancels any
// pending timer before arming a new one, so only the last keystroke in
// a burst produces a request. A cancelled timer simply never fires.
type Debouncer struct {
	delay  time.Duration
	fn     SearchFunc
	logger zerolog.Logger

	mu      sync.Mutex
	pending *time.Timer
}

// NewDebouncer creates a debouncer that calls fn after delay of
// keystroke quiet.
func NewDebouncer(delay time.Duration, fn SearchFunc, logger zerolog.Logger) *Debouncer {
	return &Debouncer{
		delay:  delay,
		fn:     fn,
		logger: logger.With().Str("component", "search-debouncer").Logger(),
	}
}

// Trigger records a keystroke. Any queued search is discarded, not
// executed, and a new timer starts with the text as typed now.
func (d *Debouncer) Trigger(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}

	d.logger.Debug().Str("query", query).Msg("search scheduled")

	var tm *time.Timer
	tm = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Only release the slot if it still belongs to this timer; a
		// keystroke may have re-armed it while we were firing.
		if d.pending == tm {
			d.pending = nil
		}
		d.mu.Unlock()

		d.fn(ctx, query)
	})
	d.pending = tm
}

// Stop discards any pending search without executing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
