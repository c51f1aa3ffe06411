package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/store"
)

// HousekeepingService keeps every user's history within Caps. Inserts already
// trim their own log, so this only catches rows left behind when a cap is
// lowered between restarts.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Caps     Caps
}

// NewHousekeepingService defaults a non-positive interval to one hour and
// zero caps to the stock limits.
func NewHousekeepingService(s store.Store, logger *slog.Logger, interval time.Duration, caps Caps) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{Store: s, Logger: logger, Interval: interval, Caps: caps.orDefault()}
}

// Run trims once straight away and then every Interval until ctx ends.
func (s *HousekeepingService) Run(ctx context.Context) {
	s.Logger.Info("housekeeping running", "interval", s.Interval, "caps", s.Caps)
	defer s.Logger.Info("housekeeping stopped")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.Trim(context.WithoutCancel(ctx))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Trim applies every cap and returns how many rows went. A failing log is
// reported and skipped.
func (s *HousekeepingService) Trim(ctx context.Context) int64 {
	logs := map[string]struct {
		trim func(context.Context, int) (int64, error)
		keep int
	}{
		"bmi":        {s.Store.BMILogs().TrimBMILogs, s.Caps.BMI},
		"bmr":        {s.Store.BMRLogs().TrimBMRLogs, s.Caps.BMR},
		"heart_rate": {s.Store.HeartRateLogs().TrimHeartRateLogs, s.Caps.HeartRate},
		"water":      {s.Store.WaterLogs().TrimWaterLogs, s.Caps.Water},
	}

	var removed int64
	for name, l := range logs {
		n, err := l.trim(ctx, l.keep)
		if err != nil {
			s.Logger.Error("history trim failed", "log", name, "keep", l.keep, "err", err)
			continue
		}
		removed += n
	}
	if removed > 0 {
		s.Logger.Info("history trimmed", "removed", removed)
	}
	return removed
}
