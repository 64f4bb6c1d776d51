package scenario

import "github.com/ewoodward/gridshift/core/model"

// Emissions returns the day's total CO2 in grams for the given demand curve:
// the hour-wise product of consumption and carbon intensity.
func Emissions(c Curve, sig model.DaySignal) float64 {
	var g float64
	for h := range c {
		g += c[h] * sig.Intensity[h]
	}
	return g
}

// Reduction derives the percentage saved by the shifted curve. It is
// negative when shifting moved energy into dirtier hours. A zero baseline
// has no defined percentage and returns ErrZeroBaseline.
func Reduction(baseline, shifted float64) (float64, error) {
	if baseline == 0 {
		return 0, ErrZeroBaseline
	}
	return (baseline - shifted) / baseline * 100, nil
}
