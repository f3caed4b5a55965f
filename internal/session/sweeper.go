package session

import (
	"context"
	"time"
)

// Sweeper periodically destroys inactive sessions. Run it in its own
// goroutine; it stops when the context is cancelled.
type Sweeper struct {
	store    *Store
	maxAge   time.Duration
	interval time.Duration
}

// NewSweeper creates a sweeper over the store.
func NewSweeper(store *Store, maxAge, interval time.Duration) *Sweeper {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Sweeper{store: store, maxAge: maxAge, interval: interval}
}

// Run blocks until ctx is cancelled, sweeping on each tick.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.store.SweepInactive(ctx, w.maxAge)
		}
	}
}
