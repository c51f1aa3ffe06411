package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// WaterSummary is the hydration view for one owner.
type WaterSummary struct {
	Goal     int
	Logs     []healthsdk.WaterEntry
	Totals   healthsdk.WaterTotals
	Progress int
	Tone     string
	Source   healthsdk.Source
	Warning  string
}

// WaterTracker adds drinks through a Log and owns the daily goal.
type WaterTracker struct {
	Log *WaterLog

	gw    *healthsdk.Client
	store localstore.Store
	bus   *bus.Bus
	loc   *time.Location
	now   func() time.Time
}

func newWaterTracker(cfg Config, actions *ActionLog, limit int) *WaterTracker {
	gw, loc := cfg.Gateway, cfg.Location

	log := &WaterLog{
		Name:      "water",
		Store:     cfg.Store,
		Bus:       cfg.Bus,
		Actions:   actions,
		Now:       cfg.Now,
		Topic:     bus.TopicWater,
		KeyPrefix: localstore.PrefixWaterLogs,
		Cap:       limit,
		Validate:  healthsdk.WaterLogRequest.Validate,
		Compute: func(owner string, r healthsdk.WaterLogRequest, at time.Time) healthsdk.WaterEntry {
			local := at.In(loc)
			return healthsdk.WaterEntry{
				ID:        idx.NewAt(at).String(),
				UserID:    owner,
				Amount:    r.Amount,
				Time:      local.Format("15:04"),
				Date:      local.Format(healthx.DateLayout),
				CreatedAt: at.UTC(),
			}
		},
		Stamp: func(e healthsdk.WaterEntry) time.Time { return e.CreatedAt },
		Describe: func(e healthsdk.WaterEntry) Action {
			return Action{
				Name:  "Water",
				Note:  fmt.Sprintf("Logged a drink at %s.", e.Time),
				Delta: fmt.Sprintf("+%dml", e.Amount),
				At:    e.CreatedAt,
			}
		},
		RecordRemote: func(ctx context.Context, r healthsdk.WaterLogRequest) (*healthsdk.WaterEntry, []healthsdk.WaterEntry, healthsdk.Result) {
			resp, res := gw.AddWater(ctx, r)
			return &resp.Entry, resp.Logs, res
		},
		ListRemote: func(ctx context.Context) ([]healthsdk.WaterEntry, healthsdk.Result) {
			resp, res := gw.WaterSummary(ctx)
			return resp.Logs, res
		},
	}

	return &WaterTracker{Log: log, gw: gw, store: cfg.Store, bus: cfg.Bus, loc: loc, now: cfg.Now}
}

// Add records one drink of amount ml.
func (w *WaterTracker) Add(ctx context.Context, ownerID string, amount int) (Outcome[healthsdk.WaterEntry], error) {
	return w.Log.Record(ctx, ownerID, healthsdk.WaterLogRequest{Amount: amount})
}

// Goal returns the owner's daily goal, DefaultWaterGoal when none is set.
func (w *WaterTracker) Goal(ctx context.Context, ownerID string) (int, error) {
	s, err := w.Summary(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return s.Goal, nil
}

// SetGoal stores a new daily goal. Non-positive goals reset to the default.
func (w *WaterTracker) SetGoal(ctx context.Context, ownerID string, goal int) (Outcome[int], error) {
	goal = healthx.NormalizeGoal(goal)

	out := Outcome[int]{Latest: goal, Source: healthsdk.SourceRemote}
	resp, res := w.gw.SetWaterGoal(ctx, healthsdk.WaterGoalRequest{Goal: goal})
	if res.OK {
		out.Latest = healthx.NormalizeGoal(resp.Goal)
	} else {
		slogx.FromContext(ctx).Warn("water goal saved locally", "status", res.Status, "err", res.Error)
		out.Source = healthsdk.SourceLocal
		out.Warning = res.Error
	}

	key := localstore.OwnerKey(localstore.PrefixWaterGoal, ownerID)
	if err := localstore.SetJSON(ctx, w.store, key, out.Latest); err != nil {
		return Outcome[int]{}, err
	}
	if w.bus != nil {
		w.bus.Publish(bus.Event{Topic: bus.TopicWater, OwnerID: ownerID, Key: key})
	}
	return out, nil
}

// Summary reads goal, logs and totals from the API, refreshing the local
// copy, or computes them from the local copy when the API is unavailable.
func (w *WaterTracker) Summary(ctx context.Context, ownerID string) (WaterSummary, error) {
	resp, res := w.gw.WaterSummary(ctx)
	if res.OK {
		out := WaterSummary{
			Goal:   healthx.NormalizeGoal(resp.Goal),
			Logs:   w.Log.order(resp.Logs),
			Totals: resp.Totals,
			Source: healthsdk.SourceRemote,
		}
		if err := localstore.SetJSON(ctx, w.store, w.Log.key(ownerID), out.Logs); err != nil {
			return WaterSummary{}, err
		}
		if err := localstore.SetJSON(ctx, w.store, localstore.OwnerKey(localstore.PrefixWaterGoal, ownerID), out.Goal); err != nil {
			return WaterSummary{}, err
		}
		return out.graded(), nil
	}

	slogx.FromContext(ctx).Debug("water summary from local cache", "status", res.Status, "err", res.Error)
	out, err := w.Cached(ctx, ownerID)
	if err != nil {
		return WaterSummary{}, err
	}
	out.Warning = res.Error
	return out, nil
}

// Cached computes the summary from the local store only.
func (w *WaterTracker) Cached(ctx context.Context, ownerID string) (WaterSummary, error) {
	logs, err := w.Log.Cached(ctx, ownerID)
	if err != nil {
		return WaterSummary{}, err
	}
	goal, err := LocalGoal(ctx, w.store, ownerID)
	if err != nil {
		return WaterSummary{}, err
	}

	out := WaterSummary{
		Goal:   goal,
		Logs:   logs,
		Totals: Totals(logs, w.now().In(w.loc)),
		Source: healthsdk.SourceLocal,
	}
	return out.graded(), nil
}

func (s WaterSummary) graded() WaterSummary {
	s.Progress = healthx.WaterProgress(s.Totals.Day, s.Goal)
	s.Tone = healthx.HydrationTone(s.Progress)
	return s
}

// LocalGoal reads the stored goal, DefaultWaterGoal when absent.
func LocalGoal(ctx context.Context, s localstore.Store, ownerID string) (int, error) {
	var goal int
	err := localstore.GetJSON(ctx, s, localstore.OwnerKey(localstore.PrefixWaterGoal, ownerID), &goal)
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return 0, err
	}
	return healthx.NormalizeGoal(goal), nil
}

// Totals sums entries by their calendar date relative to now.
func Totals(logs []healthsdk.WaterEntry, now time.Time) healthsdk.WaterTotals {
	points := make([]healthx.WaterPoint, 0, len(logs))
	for _, l := range logs {
		points = append(points, healthx.WaterPoint{Amount: l.Amount, Date: l.Date})
	}
	t := healthx.SumWater(points, now)
	return healthsdk.WaterTotals{Day: t.Day, Week: t.Week, Month: t.Month}
}
