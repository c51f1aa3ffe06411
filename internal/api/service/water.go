package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
)

// WaterSummary is the hydration view for one user.
type WaterSummary struct {
	Goal   int
	Logs   []domain.WaterLog
	Totals healthx.WaterTotals
}

type WaterService struct {
	Store store.Store
	Caps  Caps
	Now   func() time.Time
	// Location decides calendar day boundaries for the totals.
	Location *time.Location
}

func (s *WaterService) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	if s.Location != nil {
		return t.In(s.Location)
	}
	return t
}

// Goal returns the stored daily goal or healthx.DefaultWaterGoal.
func (s *WaterService) Goal(ctx context.Context, userID string) (int, error) {
	g, err := s.Store.WaterGoals().GetWaterGoal(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return healthx.DefaultWaterGoal, nil
	}
	if err != nil {
		return 0, err
	}
	return healthx.NormalizeGoal(g.Goal), nil
}

func (s *WaterService) Summary(ctx context.Context, userID string) (WaterSummary, error) {
	goal, err := s.Goal(ctx, userID)
	if err != nil {
		return WaterSummary{}, err
	}

	logs, err := s.Store.WaterLogs().ListWaterLogs(ctx, userID, s.Caps.orDefault().Water)
	if err != nil {
		return WaterSummary{}, err
	}

	now := s.now()
	points := make([]healthx.WaterPoint, 0, len(logs))
	for _, l := range logs {
		points = append(points, healthx.WaterPoint{
			Amount: l.Amount,
			Date:   l.CreatedAt.In(now.Location()).Format(healthx.DateLayout),
		})
	}

	return WaterSummary{
		Goal:   goal,
		Logs:   logs,
		Totals: healthx.SumWater(points, now),
	}, nil
}

// AddLog records one drink and returns the refreshed history.
func (s *WaterService) AddLog(ctx context.Context, userID string, amount int) (domain.WaterLog, []domain.WaterLog, error) {
	if err := healthx.CheckWaterAmount(amount); err != nil {
		return domain.WaterLog{}, nil, err
	}

	now := s.now()
	l := domain.WaterLog{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Amount:    amount,
		CreatedAt: now.UTC(),
	}
	if err := s.Store.WaterLogs().CreateWaterLog(ctx, l); err != nil {
		return domain.WaterLog{}, nil, err
	}

	logs, err := s.Store.WaterLogs().ListWaterLogs(ctx, userID, s.Caps.orDefault().Water)
	return l, logs, err
}

// SetGoal stores a daily goal. Non-positive goals fall back to the default.
func (s *WaterService) SetGoal(ctx context.Context, userID string, goal int) (int, error) {
	goal = healthx.NormalizeGoal(goal)
	err := s.Store.WaterGoals().UpsertWaterGoal(ctx, domain.WaterGoal{
		UserID:    userID,
		Goal:      goal,
		UpdatedAt: s.now().UTC(),
	})
	return goal, err
}
