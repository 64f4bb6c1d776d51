package model

import (
	"fmt"
	"math"
	"time"
)

// HoursPerDay is the fixed length of every hourly series handled by the
// engine. Day signals, demand curves and diurnal weights are all [24] arrays
// so that an incomplete day is unrepresentable.
const HoursPerDay = 24

// DaySignal is one calendar day's grid signal: carbon intensity in gCO2/kWh
// and the share of generation sourced from renewables, per hour. Providers
// build complete days only; the engine borrows the value read-only.
type DaySignal struct {
	Date      time.Time            `json:"date"`
	Intensity [HoursPerDay]float64 `json:"intensity"`
	Renewable [HoursPerDay]float64 `json:"renewable"`
}

// Day aligns t to midnight UTC. All per-day keys in the system use this.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks the signal ranges: intensity must be finite and
// non-negative, renewable share must lie in [0,1].
func (s DaySignal) Validate() error {
	for h, ci := range s.Intensity {
		if math.IsNaN(ci) || math.IsInf(ci, 0) || ci < 0 {
			return fmt.Errorf("hour %d: invalid carbon intensity %v", h, ci)
		}
	}
	for h, r := range s.Renewable {
		if math.IsNaN(r) || r < 0 || r > 1 {
			return fmt.Errorf("hour %d: renewable share %v outside [0,1]", h, r)
		}
	}
	return nil
}

// ClampShare clips a raw renewable fraction to [0,1]. Raw generation tables
// occasionally report renewables above total generation around DST changes.
func ClampShare(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
