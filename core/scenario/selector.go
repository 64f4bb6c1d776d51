package scenario

import (
	"fmt"
	"sort"

	"github.com/ewoodward/gridshift/core/model"
)

// SelectTargetHours ranks the day's hours under the given strategy and
// returns the n best, ascending by hour index. A non-nil allowed set filters
// candidates before ranking (used for EV charging windows); when the set is
// smaller than n the result clamps to the window size. Ties rank by the
// lowest hour index, so selection is deterministic.
func SelectTargetHours(sig model.DaySignal, strategy model.Strategy, n int, allowed []int) ([]int, error) {
	if n < 1 || n > model.HoursPerDay {
		return nil, fmt.Errorf("%w: target hours %d outside [1,%d]", ErrConfig, n, model.HoursPerDay)
	}

	candidates := make([]int, 0, model.HoursPerDay)
	if allowed == nil {
		for h := 0; h < model.HoursPerDay; h++ {
			candidates = append(candidates, h)
		}
	} else {
		seen := [model.HoursPerDay]bool{}
		for _, h := range allowed {
			if h < 0 || h >= model.HoursPerDay {
				return nil, fmt.Errorf("%w: allowed hour %d outside [0,%d)", ErrConfig, h, model.HoursPerDay)
			}
			if seen[h] {
				return nil, fmt.Errorf("%w: duplicate allowed hour %d", ErrConfig, h)
			}
			seen[h] = true
			candidates = append(candidates, h)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: empty allowed hour set", ErrConfig)
		}
	}

	better, err := rankFunc(strategy, sig)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return better(candidates[i], candidates[j])
	})

	take := n
	if take > len(candidates) {
		take = len(candidates)
	}
	targets := append([]int(nil), candidates[:take]...)
	sort.Ints(targets)
	return targets, nil
}

// rankFunc returns the comparison for one strategy. Equal keys fall through
// to the hour index so ordering never depends on input order.
func rankFunc(strategy model.Strategy, sig model.DaySignal) (func(a, b int) bool, error) {
	switch strategy {
	case model.StrategyLowIntensity:
		return func(a, b int) bool {
			if sig.Intensity[a] != sig.Intensity[b] {
				return sig.Intensity[a] < sig.Intensity[b]
			}
			return a < b
		}, nil
	case model.StrategyMaxRenewable:
		return func(a, b int) bool {
			if sig.Renewable[a] != sig.Renewable[b] {
				return sig.Renewable[a] > sig.Renewable[b]
			}
			return a < b
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrConfig, strategy)
	}
}
