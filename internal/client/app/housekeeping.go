package app

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// EventPruner is implemented by stores that keep a change feed on disk.
type EventPruner interface {
	PruneEvents(ctx context.Context, before time.Time) (int64, error)
}

// Housekeeping periodically drops change events older than Retention so
// the feed other processes poll stays small.
type Housekeeping struct {
	Store     EventPruner
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       func() time.Time

	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeeping defaults a non-positive interval to ten minutes and a
// non-positive retention to one hour.
func NewHousekeeping(s EventPruner, logger *slog.Logger, interval, retention time.Duration) *Housekeeping {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if retention <= 0 {
		retention = time.Hour
	}

	return &Housekeeping{
		Store:     s,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		Now:       time.Now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (h *Housekeeping) Start() {
	if !h.running.CompareAndSwap(false, true) {
		return
	}
	go h.run()
	h.Logger.Debug("housekeeping started", "interval", h.Interval, "retention", h.Retention)
}

// Stop blocks until any in-progress prune has finished. Stopping a worker
// that never started does nothing.
func (h *Housekeeping) Stop() {
	if !h.running.Swap(false) {
		return
	}
	close(h.stopCh)
	<-h.doneCh
	h.Logger.Debug("housekeeping stopped")
}

func (h *Housekeeping) run() {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	h.Prune(context.Background())

	for {
		select {
		case <-ticker.C:
			h.Prune(context.Background())
		case <-h.stopCh:
			return
		}
	}
}

// Prune removes events older than the retention window and returns how
// many went.
func (h *Housekeeping) Prune(ctx context.Context) int64 {
	n, err := h.Store.PruneEvents(ctx, h.Now().Add(-h.Retention))
	if err != nil {
		h.Logger.Error("failed to prune change events", "error", err)
		return 0
	}
	if n > 0 {
		h.Logger.Debug("pruned change events", "deleted", n)
	}
	return n
}
