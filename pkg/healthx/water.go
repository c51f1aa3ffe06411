package healthx

import (
	"math"
	"time"
)

// DefaultWaterGoal is the daily target in ml when none is set.
const DefaultWaterGoal = 2000

// NormalizeGoal replaces non-positive goals with DefaultWaterGoal.
func NormalizeGoal(goal int) int {
	if goal <= 0 {
		return DefaultWaterGoal
	}
	return goal
}

// WaterPoint is the part of a water log the totals need.
type WaterPoint struct {
	Amount int
	Date   string // YYYY-MM-DD
}

// WaterTotals are intake sums over calendar windows ending today.
type WaterTotals struct {
	Day   int `json:"day"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

// SumWater totals points dated today, within the last 7 days and within the
// last 30 days. Future dates and unparsable dates are ignored.
func SumWater(points []WaterPoint, now time.Time) WaterTotals {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var t WaterTotals
	for _, p := range points {
		d, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			continue
		}
		diff := int(today.Sub(d).Hours() / 24)
		if diff < 0 {
			continue
		}
		if diff == 0 {
			t.Day += p.Amount
		}
		if diff <= 6 {
			t.Week += p.Amount
		}
		if diff <= 29 {
			t.Month += p.Amount
		}
	}
	return t
}

// WaterProgress is today's intake as a percentage of goal, capped at 100.
func WaterProgress(day, goal int) int {
	goal = NormalizeGoal(goal)
	return int(math.Min(100, math.Round(float64(day)/float64(goal)*100)))
}

// HydrationTone grades progress: good at 100, warn from 70, alert below.
func HydrationTone(progress int) string {
	switch {
	case progress >= 100:
		return "good"
	case progress >= 70:
		return "warn"
	default:
		return "alert"
	}
}
