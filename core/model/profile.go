package model

import (
	"fmt"
	"math"
)

// WeightSumTolerance bounds how far diurnal weights may drift from summing
// to one before the profile is rejected.
const WeightSumTolerance = 1e-6

// diurnalShapeRaw is the unnormalized UK household demand shape: a small
// night trough, a morning ramp and an evening peak at 18-19h.
var diurnalShapeRaw = [HoursPerDay]float64{
	0.25, 0.23, 0.22, 0.22, 0.25, 0.35,
	0.55, 0.65, 0.60, 0.55, 0.50, 0.48,
	0.47, 0.50, 0.55, 0.60, 0.75, 1.10,
	1.20, 1.05, 0.70, 0.55, 0.40, 0.30,
}

// DefaultDiurnalShape returns the default demand weights, normalized to sum
// to one. Used whenever a profile does not carry custom weights.
func DefaultDiurnalShape() [HoursPerDay]float64 {
	var sum float64
	for _, v := range diurnalShapeRaw {
		sum += v
	}
	var w [HoursPerDay]float64
	for h, v := range diurnalShapeRaw {
		w[h] = v / sum
	}
	return w
}

// EVConfig describes an optional EV charging block. The window is an
// inclusive hour range and may wrap past midnight (e.g. 21 to 6).
type EVConfig struct {
	Enabled     bool    `json:"enabled"`
	DailyKWh    float64 `json:"daily_kwh"`
	WindowStart int     `json:"window_start"`
	WindowEnd   int     `json:"window_end"`
}

// Window expands the configured range into an ordered set of hour indices.
func (c EVConfig) Window() []int {
	if c.WindowStart < 0 || c.WindowStart >= HoursPerDay ||
		c.WindowEnd < 0 || c.WindowEnd >= HoursPerDay {
		return nil
	}
	var hours []int
	h := c.WindowStart
	for {
		hours = append(hours, h)
		if h == c.WindowEnd {
			return hours
		}
		h = (h + 1) % HoursPerDay
	}
}

// Validate checks EV bounds when charging is enabled.
func (c EVConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.DailyKWh < 0 {
		return fmt.Errorf("ev daily energy must be >= 0, got %v", c.DailyKWh)
	}
	if len(c.Window()) == 0 {
		return fmt.Errorf("ev window [%d,%d] is not a valid hour range", c.WindowStart, c.WindowEnd)
	}
	return nil
}

// HouseholdProfile configures one simulated household. The profile may be
// reused across any number of days; the engine never mutates it.
type HouseholdProfile struct {
	DailyKWh      float64              `json:"daily_kwh"`
	FlexibleShare float64              `json:"flexible_share"`
	Weights       [HoursPerDay]float64 `json:"weights"`
	EV            EVConfig             `json:"ev"`
}

// Validate checks the profile invariants: positive daily energy, flexible
// share in [0,1], non-negative weights summing to one, valid EV window.
func (p HouseholdProfile) Validate() error {
	if p.DailyKWh <= 0 {
		return fmt.Errorf("daily energy must be > 0, got %v", p.DailyKWh)
	}
	if p.FlexibleShare < 0 || p.FlexibleShare > 1 {
		return fmt.Errorf("flexible share %v outside [0,1]", p.FlexibleShare)
	}
	var sum float64
	for h, w := range p.Weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("hour %d: negative weight %v", h, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > WeightSumTolerance {
		return fmt.Errorf("weights sum to %v, want 1", sum)
	}
	return p.EV.Validate()
}
