package config

import (
	"fmt"

	"github.com/ewoodward/gridshift/core/model"
)

// HouseholdConfig describes the simulated household. Weights are optional;
// when omitted the default diurnal shape is used.
type HouseholdConfig struct {
	DailyKWh      float64        `json:"daily_kwh"`
	FlexibleShare float64        `json:"flexible_share"`
	Weights       []float64      `json:"weights"`
	EV            model.EVConfig `json:"ev"`
}

// SetDefaults applies the product defaults: 14 kWh per day with 30%
// flexible, EV disabled with a 18-23h charging window.
func (c *HouseholdConfig) SetDefaults() {
	if c.DailyKWh == 0 {
		c.DailyKWh = 14
	}
	if c.FlexibleShare == 0 {
		c.FlexibleShare = 0.3
	}
	if c.EV.WindowStart == 0 && c.EV.WindowEnd == 0 {
		c.EV.WindowStart = 18
		c.EV.WindowEnd = 23
	}
}

// Validate checks the weight count here and defers the value checks to the
// profile itself.
func (c HouseholdConfig) Validate() error {
	if n := len(c.Weights); n != 0 && n != model.HoursPerDay {
		return fmt.Errorf("household weights need %d entries, got %d", model.HoursPerDay, n)
	}
	_, err := c.Profile()
	return err
}

// Profile converts the section into the engine's household profile.
func (c HouseholdConfig) Profile() (model.HouseholdProfile, error) {
	p := model.HouseholdProfile{
		DailyKWh:      c.DailyKWh,
		FlexibleShare: c.FlexibleShare,
		EV:            c.EV,
	}
	if len(c.Weights) == 0 {
		p.Weights = model.DefaultDiurnalShape()
	} else {
		if len(c.Weights) != model.HoursPerDay {
			return p, fmt.Errorf("household weights need %d entries, got %d", model.HoursPerDay, len(c.Weights))
		}
		copy(p.Weights[:], c.Weights)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("household: %w", err)
	}
	return p, nil
}
