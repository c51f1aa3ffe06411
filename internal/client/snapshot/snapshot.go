// Package snapshot turns the locally cached metric lists into display-ready
// cards. It only reads the local store, so it works the same online and
// offline and always reflects the last write.
package snapshot

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/healthmate/internal/client/metrics"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

const (
	Placeholder = "--"
	NoData      = "No data yet"
)

// RecentActions is how many feed entries a snapshot carries.
const RecentActions = 3

type BMICard struct {
	HasData  bool
	Value    string
	Band     string
	Label    string
	Color    string
	BarWidth float64
}

type Card struct {
	HasData bool
	Value   string
	Note    string
}

type Status struct {
	Value string
	Note  string
	Tone  string
}

type Snapshot struct {
	OwnerID   string
	BMI       BMICard
	BMR       Card
	HeartRate Card
	Water     Card
	Status    Status
	Actions   []metrics.Action
}

// Empty is the snapshot shown when nobody is signed in.
func Empty() Snapshot {
	return Snapshot{
		BMI:       BMICard{Value: Placeholder, Label: NoData},
		BMR:       Card{Value: Placeholder, Note: NoData},
		HeartRate: Card{Value: Placeholder, Note: NoData},
		Water:     Card{Value: Placeholder, Note: NoData},
		Status:    Status{Value: Placeholder, Note: NoData},
		Actions:   slices.Clone(metrics.DefaultSuggestions),
	}
}

type Builder struct {
	Metrics *metrics.Service
}

// Build reads the newest entry of each domain for ownerID. Unreadable or
// missing data degrades to placeholders; Build never fails.
func (b *Builder) Build(ctx context.Context, ownerID string) Snapshot {
	snap := Empty()
	if ownerID == "" {
		return snap
	}
	snap.OwnerID = ownerID
	log := slogx.Component(ctx, "snapshot").With("owner_id", ownerID)

	var band *healthx.BMIBand
	if list, err := b.Metrics.BMI.Cached(ctx, ownerID); err != nil {
		log.Warn("snapshot: bmi unreadable", "err", err)
	} else if len(list) > 0 {
		v := list[0].BMI
		bb := healthx.ClassifyBMI(v)
		band = &bb
		snap.BMI = BMICard{
			HasData:  true,
			Value:    fmt.Sprintf("%.1f", v),
			Band:     bb.Key,
			Label:    bb.Label,
			Color:    bb.Color,
			BarWidth: healthx.BMIBarWidth(v),
		}
	}

	if list, err := b.Metrics.BMR.Cached(ctx, ownerID); err != nil {
		log.Warn("snapshot: bmr unreadable", "err", err)
	} else if len(list) > 0 {
		e := list[0]
		note := fmt.Sprintf("TDEE %d kcal", e.TDEE)
		if e.ActivityLabel != "" {
			note += " · " + e.ActivityLabel
		}
		snap.BMR = Card{HasData: true, Value: fmt.Sprintf("%d kcal", e.BMR), Note: note}
	}

	if list, err := b.Metrics.HeartRate.Cached(ctx, ownerID); err != nil {
		log.Warn("snapshot: heart rate unreadable", "err", err)
	} else if len(list) > 0 {
		e := list[0]
		parts := []string{"Moderate " + e.Moderate, "Vigorous " + e.Vigorous}
		if e.Zone != "" {
			parts = append(parts, fmt.Sprintf("resting %d bpm (%s)", e.BPM, e.Zone))
		}
		snap.HeartRate = Card{HasData: true, Value: fmt.Sprintf("%d bpm max", e.Max), Note: strings.Join(parts, " · ")}
	}

	var water *metrics.WaterSummary
	if s, err := b.Metrics.Water.Cached(ctx, ownerID); err != nil {
		log.Warn("snapshot: water unreadable", "err", err)
	} else if len(s.Logs) > 0 {
		water = &s
		snap.Water = Card{
			HasData: true,
			Value:   fmt.Sprintf("%d / %d ml", s.Totals.Day, s.Goal),
			Note:    fmt.Sprintf("%d%% of today's goal", s.Progress),
		}
	}

	snap.Status = status(band, water)

	if list, err := b.Metrics.Actions.List(ctx, ownerID); err != nil {
		log.Warn("snapshot: actions unreadable", "err", err)
	} else if len(list) > 0 {
		snap.Actions = list[:min(len(list), RecentActions)]
	}
	return snap
}

// status grades the owner by BMI band and today's hydration. The worse of
// the two tones wins.
func status(band *healthx.BMIBand, water *metrics.WaterSummary) Status {
	if band == nil && water == nil {
		return Status{Value: Placeholder, Note: NoData}
	}

	var tones, notes []string
	if band != nil {
		tones = append(tones, band.Tone)
		notes = append(notes, "BMI "+strings.ToLower(band.Label))
	}
	if water != nil {
		tones = append(tones, water.Tone)
		notes = append(notes, fmt.Sprintf("hydration %d%%", water.Progress))
	}

	tone := "good"
	for _, t := range tones {
		if rank(t) > rank(tone) {
			tone = t
		}
	}

	value := map[string]string{
		"good":  "On track",
		"warn":  "Keep going",
		"alert": "Needs attention",
	}[tone]
	return Status{Value: value, Note: strings.Join(notes, " · "), Tone: tone}
}

func rank(tone string) int {
	switch tone {
	case "alert":
		return 2
	case "warn":
		return 1
	default:
		return 0
	}
}
