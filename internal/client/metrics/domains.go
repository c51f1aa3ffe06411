package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
)

const (
	DefaultBMICap       = 90
	DefaultBMRCap       = 30
	DefaultHeartRateCap = 30
	DefaultWaterCap     = 200
)

// Caps bounds each stored list. Zero fields use the defaults.
type Caps struct {
	BMI       int `yaml:"bmi"`
	BMR       int `yaml:"bmr"`
	HeartRate int `yaml:"heart_rate"`
	Water     int `yaml:"water"`
}

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

type (
	BMILog       = Log[healthsdk.BMIRequest, healthsdk.BMIEntry]
	BMRLog       = Log[healthsdk.BMRRequest, healthsdk.BMREntry]
	HeartRateLog = Log[healthsdk.HeartRateRequest, healthsdk.HeartRateEntry]
	WaterLog     = Log[healthsdk.WaterLogRequest, healthsdk.WaterEntry]
)

type Config struct {
	Gateway *healthsdk.Client
	Store   localstore.Store
	Bus     *bus.Bus
	Caps    Caps
	// Location decides which calendar day a reading belongs to.
	Location *time.Location
	Now      func() time.Time
}

// Service groups the per-domain logs and the action feed they append to.
type Service struct {
	Actions   *ActionLog
	BMI       *BMILog
	BMR       *BMRLog
	HeartRate *HeartRateLog
	Water     *WaterTracker
}

func New(cfg Config) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	caps := cfg.Caps.orDefault()
	gw := cfg.Gateway
	loc := cfg.Location
	actions := &ActionLog{Store: cfg.Store, Bus: cfg.Bus, Now: cfg.Now}
	date := func(at time.Time) string { return at.In(loc).Format(healthx.DateLayout) }

	bmi := &BMILog{
		Name:      "bmi",
		Store:     cfg.Store,
		Bus:       cfg.Bus,
		Actions:   actions,
		Now:       cfg.Now,
		Topic:     bus.TopicBMI,
		KeyPrefix: localstore.PrefixBMILogs,
		Cap:       caps.BMI,
		Validate:  healthsdk.BMIRequest.Validate,
		Compute: func(owner string, r healthsdk.BMIRequest, at time.Time) healthsdk.BMIEntry {
			return healthsdk.BMIEntry{
				ID:        idx.NewAt(at).String(),
				UserID:    owner,
				BMI:       healthx.BMI(r.Height, r.Weight),
				Height:    r.Height,
				Weight:    r.Weight,
				Age:       r.Age,
				Gender:    r.Gender,
				CreatedAt: at.UTC(),
				Date:      date(at),
			}
		},
		Stamp: func(e healthsdk.BMIEntry) time.Time { return e.CreatedAt },
		Describe: func(e healthsdk.BMIEntry) Action {
			return Action{
				Name:  "BMI",
				Note:  fmt.Sprintf("Measured %.0fcm / %.1fkg, %s.", e.Height, e.Weight, healthx.ClassifyBMI(e.BMI).Label),
				Delta: fmt.Sprintf("%.1f", e.BMI),
				At:    e.CreatedAt,
			}
		},
		RecordRemote: func(ctx context.Context, r healthsdk.BMIRequest) (*healthsdk.BMIEntry, []healthsdk.BMIEntry, healthsdk.Result) {
			resp, res := gw.RecordBMI(ctx, r)
			return resp.Latest, resp.Logs, res
		},
		ListRemote: func(ctx context.Context) ([]healthsdk.BMIEntry, healthsdk.Result) {
			resp, res := gw.ListBMI(ctx)
			return resp.Logs, res
		},
	}

	bmr := &BMRLog{
		Name:      "bmr",
		Store:     cfg.Store,
		Bus:       cfg.Bus,
		Actions:   actions,
		Now:       cfg.Now,
		Topic:     bus.TopicBMR,
		KeyPrefix: localstore.PrefixBMRLogs,
		Cap:       caps.BMR,
		Validate:  healthsdk.BMRRequest.Validate,
		Compute: func(owner string, r healthsdk.BMRRequest, at time.Time) healthsdk.BMREntry {
			value := healthx.BMR(r.Height, r.Weight, r.Age, r.Gender)
			e := healthsdk.BMREntry{
				ID:        idx.NewAt(at).String(),
				UserID:    owner,
				BMR:       value,
				TDEE:      healthx.TDEE(value, r.Activity),
				Age:       r.Age,
				Height:    r.Height,
				Weight:    r.Weight,
				Gender:    r.Gender,
				Activity:  r.Activity,
				CreatedAt: at.UTC(),
				Date:      date(at),
			}
			if level, err := healthx.LookupActivity(r.Activity); err == nil {
				e.ActivityLabel = level.Label
			}
			return e
		},
		Stamp: func(e healthsdk.BMREntry) time.Time { return e.CreatedAt },
		Describe: func(e healthsdk.BMREntry) Action {
			return Action{
				Name:  "BMR",
				Note:  fmt.Sprintf("TDEE %d kcal at activity %.3g.", e.TDEE, e.Activity),
				Delta: fmt.Sprintf("%d kcal", e.BMR),
				At:    e.CreatedAt,
			}
		},
		RecordRemote: func(ctx context.Context, r healthsdk.BMRRequest) (*healthsdk.BMREntry, []healthsdk.BMREntry, healthsdk.Result) {
			resp, res := gw.RecordBMR(ctx, r)
			return resp.Latest, resp.Logs, res
		},
		ListRemote: func(ctx context.Context) ([]healthsdk.BMREntry, healthsdk.Result) {
			resp, res := gw.ListBMR(ctx)
			return resp.Logs, res
		},
	}

	hr := &HeartRateLog{
		Name:      "heart_rate",
		Store:     cfg.Store,
		Bus:       cfg.Bus,
		Actions:   actions,
		Now:       cfg.Now,
		Topic:     bus.TopicHeartRate,
		KeyPrefix: localstore.PrefixHRLogs,
		Cap:       caps.HeartRate,
		Validate:  healthsdk.HeartRateRequest.Validate,
		Compute: func(owner string, r healthsdk.HeartRateRequest, at time.Time) healthsdk.HeartRateEntry {
			z := healthx.ZonesForAge(r.Age)
			e := healthsdk.HeartRateEntry{
				ID:        idx.NewAt(at).String(),
				UserID:    owner,
				Age:       r.Age,
				BPM:       r.RestingHeartRate,
				Max:       z.Max,
				Moderate:  z.Moderate(),
				Vigorous:  z.Vigorous(),
				Mode:      healthx.HeartRateMode,
				CreatedAt: at.UTC(),
				Date:      date(at),
			}
			if r.RestingHeartRate > 0 {
				e.Zone = healthx.RestingZone(r.RestingHeartRate)
			}
			return e
		},
		Stamp: func(e healthsdk.HeartRateEntry) time.Time { return e.CreatedAt },
		Describe: func(e healthsdk.HeartRateEntry) Action {
			return Action{
				Name:  "Heart rate",
				Note:  fmt.Sprintf("Moderate %s, vigorous %s.", e.Moderate, e.Vigorous),
				Delta: fmt.Sprintf("max %d bpm", e.Max),
				At:    e.CreatedAt,
			}
		},
		RecordRemote: func(ctx context.Context, r healthsdk.HeartRateRequest) (*healthsdk.HeartRateEntry, []healthsdk.HeartRateEntry, healthsdk.Result) {
			resp, res := gw.RecordHeartRate(ctx, r)
			return resp.Latest, resp.Logs, res
		},
		ListRemote: func(ctx context.Context) ([]healthsdk.HeartRateEntry, healthsdk.Result) {
			resp, res := gw.ListHeartRate(ctx)
			return resp.Logs, res
		},
	}

	return &Service{
		Actions:   actions,
		BMI:       bmi,
		BMR:       bmr,
		HeartRate: hr,
		Water:     newWaterTracker(cfg, actions, caps.Water),
	}
}
