// Package scenario implements the household load-shifting engine: building
// demand curves from a profile, selecting target hours under a strategy,
// redistributing flexible energy into them without changing the daily total,
// and scoring the emissions delta. Every operation is a pure function of its
// inputs; days never share state.
package scenario

import (
	"errors"
	"fmt"

	"github.com/ewoodward/gridshift/core/logger"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/results"
)

// Engine simulates single (day, strategy) pairs.
type Engine struct {
	log logger.Logger
}

// NewEngine creates an Engine. A nil logger disables engine logging.
func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{log: log}
}

// SimulateDay runs one scenario day: build curves, pick target hours, shift
// the household and EV components independently, and score both combined
// curves. Configuration problems abort with ErrConfig; a zero-baseline day
// comes back flagged invalid instead of failing the run.
func (e *Engine) SimulateDay(sig model.DaySignal, p model.HouseholdProfile, strategy model.Strategy, n int) (results.DayResult, error) {
	if err := sig.Validate(); err != nil {
		return results.DayResult{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	base, flex, ev, err := BuildCurves(p)
	if err != nil {
		return results.DayResult{}, err
	}

	targets, err := SelectTargetHours(sig, strategy, n, nil)
	if err != nil {
		return results.DayResult{}, err
	}
	shifted, err := Shift(base, flex, targets)
	if err != nil {
		return results.DayResult{}, err
	}

	shiftedEV := ev
	var evTargets []int
	if p.EV.Enabled && p.EV.DailyKWh > 0 {
		evTargets, err = SelectTargetHours(sig, strategy, n, p.EV.Window())
		if err != nil {
			return results.DayResult{}, err
		}
		// The whole EV block is flexible, so the curve doubles as its own
		// flexible series.
		shiftedEV, err = Shift(ev, ev, evTargets)
		if err != nil {
			return results.DayResult{}, err
		}
	}

	combinedBase := base.Add(ev)
	combinedShifted := shifted.Add(shiftedEV)
	baselineG := Emissions(combinedBase, sig)
	shiftedG := Emissions(combinedShifted, sig)

	res := results.DayResult{
		Date:        model.Day(sig.Date),
		Strategy:    strategy.String(),
		BaselineG:   baselineG,
		ShiftedG:    shiftedG,
		TargetHours: targets,
		EVTargets:   evTargets,
		Valid:       true,
		Baseline:    combinedBase,
		Shifted:     combinedShifted,
	}
	red, err := Reduction(baselineG, shiftedG)
	switch {
	case errors.Is(err, ErrZeroBaseline):
		res.Valid = false
		res.Note = "zero baseline emissions"
		e.log.Warnf("day %s: zero baseline emissions, flagged", res.Date.Format("2006-01-02"))
	case err != nil:
		return results.DayResult{}, err
	default:
		res.ReductionPct = red
	}
	return res, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
