package scenario

import (
	"fmt"

	"github.com/ewoodward/gridshift/core/model"
)

// Shift moves all flexible energy out of its original hours and injects it
// in equal parts into the target hours. The inflexible remainder stays in
// place, so the shifted curve carries exactly the baseline's total energy.
// An empty target set is a no-op: the baseline is returned unchanged.
func Shift(base, flex Curve, targets []int) (Curve, error) {
	for h := range flex {
		if flex[h] < 0 {
			return Curve{}, fmt.Errorf("%w: hour %d: negative flexible energy %v", ErrConfig, h, flex[h])
		}
		if flex[h] > base[h] {
			return Curve{}, fmt.Errorf("%w: hour %d: flexible energy %v exceeds baseline %v", ErrConfig, h, flex[h], base[h])
		}
	}
	if len(targets) == 0 {
		return base, nil
	}
	seen := [model.HoursPerDay]bool{}
	for _, h := range targets {
		if h < 0 || h >= model.HoursPerDay {
			return Curve{}, fmt.Errorf("%w: target hour %d outside [0,%d)", ErrConfig, h, model.HoursPerDay)
		}
		if seen[h] {
			return Curve{}, fmt.Errorf("%w: duplicate target hour %d", ErrConfig, h)
		}
		seen[h] = true
	}

	// Removal happens globally before injection, so a target hour that lost
	// its own flexible energy still receives the full equal share on top of
	// its inflexible remainder.
	var shifted Curve
	for h := range base {
		shifted[h] = base[h] - flex[h]
	}
	inject := flex.Total() / float64(len(targets))
	for _, h := range targets {
		shifted[h] += inject
	}
	return shifted, nil
}
