package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
)

// Default per-user history caps.
const (
	DefaultBMICap       = 90
	DefaultBMRCap       = 30
	DefaultHeartRateCap = 30
	DefaultWaterCap     = 200
)

// Caps bounds how many entries each log keeps per user.
type Caps struct {
	BMI       int
	BMR       int
	HeartRate int
	Water     int
}

// DefaultCaps returns the stock limits.
func DefaultCaps() Caps {
	return Caps{BMI: DefaultBMICap, BMR: DefaultBMRCap, HeartRate: DefaultHeartRateCap, Water: DefaultWaterCap}
}

func (c Caps) orDefault() Caps {
	d := DefaultCaps()
	if c.BMI <= 0 {
		c.BMI = d.BMI
	}
	if c.BMR <= 0 {
		c.BMR = d.BMR
	}
	if c.HeartRate <= 0 {
		c.HeartRate = d.HeartRate
	}
	if c.Water <= 0 {
		c.Water = d.Water
	}
	return c
}

// MetricService records and lists BMI, BMR and heart rate calculations.
type MetricService struct {
	Store store.Store
	Caps  Caps
	Now   func() time.Time
}

func (s *MetricService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RecordBMI validates the measurement, computes the BMI and stores it.
// The returned slice is the refreshed history, newest first.
func (s *MetricService) RecordBMI(ctx context.Context, userID string, req healthsdk.BMIRequest) (domain.BMILog, []domain.BMILog, error) {
	if err := req.Validate(); err != nil {
		return domain.BMILog{}, nil, err
	}

	now := s.now()
	l := domain.BMILog{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Height:    req.Height,
		Weight:    req.Weight,
		BMI:       healthx.BMI(req.Height, req.Weight),
		Age:       req.Age,
		Gender:    req.Gender,
		CreatedAt: now,
	}
	if err := s.Store.BMILogs().CreateBMILog(ctx, l); err != nil {
		return domain.BMILog{}, nil, err
	}

	logs, err := s.ListBMI(ctx, userID)
	return l, logs, err
}

func (s *MetricService) ListBMI(ctx context.Context, userID string) ([]domain.BMILog, error) {
	return s.Store.BMILogs().ListBMILogs(ctx, userID, s.Caps.orDefault().BMI)
}

// RecordBMR computes BMR with Mifflin-St Jeor and TDEE for the given
// activity factor.
func (s *MetricService) RecordBMR(ctx context.Context, userID string, req healthsdk.BMRRequest) (domain.BMRLog, []domain.BMRLog, error) {
	if err := req.Validate(); err != nil {
		return domain.BMRLog{}, nil, err
	}

	bmr := healthx.BMR(req.Height, req.Weight, req.Age, req.Gender)
	now := s.now()
	l := domain.BMRLog{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Height:    req.Height,
		Weight:    req.Weight,
		Age:       req.Age,
		Gender:    req.Gender,
		Activity:  req.Activity,
		BMR:       bmr,
		TDEE:      healthx.TDEE(bmr, req.Activity),
		CreatedAt: now,
	}
	if err := s.Store.BMRLogs().CreateBMRLog(ctx, l); err != nil {
		return domain.BMRLog{}, nil, err
	}

	logs, err := s.ListBMR(ctx, userID)
	return l, logs, err
}

func (s *MetricService) ListBMR(ctx context.Context, userID string) ([]domain.BMRLog, error) {
	return s.Store.BMRLogs().ListBMRLogs(ctx, userID, s.Caps.orDefault().BMR)
}

// RecordHeartRate stores a target zone calculation. The resting rate is
// optional.
func (s *MetricService) RecordHeartRate(ctx context.Context, userID string, req healthsdk.HeartRateRequest) (domain.HeartRateLog, []domain.HeartRateLog, error) {
	if err := req.Validate(); err != nil {
		return domain.HeartRateLog{}, nil, err
	}

	now := s.now()
	l := domain.HeartRateLog{
		ID:         idx.NewAt(now).String(),
		UserID:     userID,
		Age:        req.Age,
		RestingBPM: req.RestingHeartRate,
		MaxBPM:     healthx.ZonesForAge(req.Age).Max,
		CreatedAt:  now,
	}
	if err := s.Store.HeartRateLogs().CreateHeartRateLog(ctx, l); err != nil {
		return domain.HeartRateLog{}, nil, err
	}

	logs, err := s.ListHeartRate(ctx, userID)
	return l, logs, err
}

func (s *MetricService) ListHeartRate(ctx context.Context, userID string) ([]domain.HeartRateLog, error) {
	return s.Store.HeartRateLogs().ListHeartRateLogs(ctx, userID, s.Caps.orDefault().HeartRate)
}
