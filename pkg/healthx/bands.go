package healthx

import "math"

// BMICeiling is the BMI that renders as a full bar.
const BMICeiling = 35.0

// BMIBand is one row of the classification table.
type BMIBand struct {
	Key   string
	Label string
	Color string
	Tone  string
	// Upper is the exclusive upper bound. The last band is unbounded.
	Upper float64
}

// BMIBands are contiguous over [0, +Inf) and ordered by Upper.
var BMIBands = []BMIBand{
	{Key: "underweight", Label: "Underweight", Color: "#3b82f6", Tone: "warn", Upper: 18.5},
	{Key: "healthy", Label: "Healthy", Color: "#22c55e", Tone: "good", Upper: 23},
	{Key: "overweight", Label: "Overweight", Color: "#f59e0b", Tone: "warn", Upper: 25},
	{Key: "obese-1", Label: "Obese I", Color: "#f97316", Tone: "alert", Upper: 30},
	{Key: "obese-2", Label: "Obese II", Color: "#ef4444", Tone: "alert", Upper: 35},
	{Key: "obese-3", Label: "Obese III", Color: "#b91c1c", Tone: "alert", Upper: math.Inf(1)},
}

// ClassifyBMI returns the band containing v. Negative values fall into the
// first band.
func ClassifyBMI(v float64) BMIBand {
	for _, b := range BMIBands {
		if v < b.Upper {
			return b
		}
	}
	return BMIBands[len(BMIBands)-1]
}

// BMIBarWidth scales v against BMICeiling and clamps to 0-100.
func BMIBarWidth(v float64) float64 {
	return math.Max(0, math.Min(100, v/BMICeiling*100))
}
