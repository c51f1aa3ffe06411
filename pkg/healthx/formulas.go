package healthx

import (
	"fmt"
	"math"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BMI returns weight / (height/100)^2 rounded to one decimal.
func BMI(heightCM, weightKG float64) float64 {
	m := heightCM / 100
	return Round1(weightKG / (m * m))
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day, rounded.
func BMR(heightCM, weightKG float64, age int, gender string) int {
	offset := -161.0
	if gender == GenderMale {
		offset = 5
	}
	return int(math.Round(10*weightKG + 6.25*heightCM - 5*float64(age) + offset))
}

// ActivityLevel is a TDEE multiplier with its display label.
type ActivityLevel struct {
	Factor float64 `json:"factor"`
	Label  string  `json:"label"`
}

// ActivityLevels are the accepted TDEE multipliers, least active first.
var ActivityLevels = []ActivityLevel{
	{1.2, "Sedentary (little or no exercise)"},
	{1.375, "Light (exercise 1-3 days/week)"},
	{1.55, "Moderate (exercise 3-5 days/week)"},
	{1.725, "Active (exercise 6-7 days/week)"},
	{1.9, "Very active (hard training or physical job)"},
}

// LookupActivity finds the level for a factor. Unknown factors are rejected.
func LookupActivity(factor float64) (ActivityLevel, error) {
	for _, l := range ActivityLevels {
		if math.Abs(l.Factor-factor) < 1e-9 {
			return l, nil
		}
	}
	return ActivityLevel{}, Invalid("activity", "unknown activity factor %v", factor)
}

// TDEE is total daily energy expenditure, rounded.
func TDEE(bmr int, factor float64) int {
	return int(math.Round(float64(bmr) * factor))
}

// HeartRateMode is the training mode recorded with every zone calculation.
const HeartRateMode = "cardio"

// HeartRateZones are the target training ranges for an age.
type HeartRateZones struct {
	Max         int
	ModerateMin int
	ModerateMax int
	VigorousMin int
	VigorousMax int
}

// ZonesForAge uses max = 220 - age, moderate at 50-70% and vigorous at
// 70-85% of max.
func ZonesForAge(age int) HeartRateZones {
	maxHR := 220 - age
	pct := func(p float64) int { return int(math.Round(float64(maxHR) * p)) }
	return HeartRateZones{
		Max:         maxHR,
		ModerateMin: pct(0.5),
		ModerateMax: pct(0.7),
		VigorousMin: pct(0.7),
		VigorousMax: pct(0.85),
	}
}

// Moderate renders the moderate zone as "95-133 bpm".
func (z HeartRateZones) Moderate() string {
	return fmt.Sprintf("%d-%d bpm", z.ModerateMin, z.ModerateMax)
}

// Vigorous renders the vigorous zone.
func (z HeartRateZones) Vigorous() string {
	return fmt.Sprintf("%d-%d bpm", z.VigorousMin, z.VigorousMax)
}

// RestingZone labels a resting heart rate.
func RestingZone(bpm int) string {
	switch {
	case bpm < 60:
		return "athletic"
	case bpm <= 80:
		return "normal"
	default:
		return "elevated"
	}
}
