package scenario

import (
	"fmt"

	"github.com/ewoodward/gridshift/core/model"
)

// BuildCurves expands a household profile into its baseline demand curve,
// the flexible portion of each hour, and the EV charging curve. The flexible
// share is uniform across hours; EV energy is spread evenly over its window
// and is fully flexible.
func BuildCurves(p model.HouseholdProfile) (base, flex, ev Curve, err error) {
	if verr := p.Validate(); verr != nil {
		return base, flex, ev, fmt.Errorf("%w: %v", ErrConfig, verr)
	}
	for h := range base {
		base[h] = p.DailyKWh * p.Weights[h]
		flex[h] = base[h] * p.FlexibleShare
	}
	if p.EV.Enabled && p.EV.DailyKWh > 0 {
		window := p.EV.Window()
		perHour := p.EV.DailyKWh / float64(len(window))
		for _, h := range window {
			ev[h] = perHour
		}
	}
	return base, flex, ev, nil
}
