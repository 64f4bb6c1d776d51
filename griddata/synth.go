package griddata

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/infra/logger"
)

// baseIntensity is the diurnal carbon intensity shape in gCO2/kWh: a night
// trough, a morning ramp, a midday solar dip and an evening peak.
var baseIntensity = [model.HoursPerDay]float64{
	150, 140, 130, 125, 120, 125,
	150, 200, 260, 250, 230, 210,
	200, 195, 200, 220, 260, 300,
	320, 310, 280, 240, 200, 170,
}

// Synthetic generates deterministic grid signals. Every day is seeded from
// the provider seed plus the date, so a given date carries the same signal
// no matter which query window it is read through.
type Synthetic struct {
	seed int64
	log  logger.Logger
}

// NewSynthetic creates a generator from cfg.Seed, defaulting to 42.
func NewSynthetic(cfg config.SyntheticConfig, log logger.Logger) *Synthetic {
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}
	if log == nil {
		log = logger.New("synthetic")
	}
	return &Synthetic{seed: seed, log: log}
}

// Days generates one signal per day from from to to inclusive. Both bounds
// are required; the generator has no natural start or end.
func (s *Synthetic) Days(ctx context.Context, from, to time.Time) ([]model.DaySignal, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("synthetic provider needs a bounded date range")
	}
	lo, hi := model.Day(from), model.Day(to)
	if hi.Before(lo) {
		return nil, fmt.Errorf("date range ends %s before it starts %s",
			hi.Format("2006-01-02"), lo.Format("2006-01-02"))
	}
	var days []model.DaySignal
	for day := lo; !day.After(hi); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		days = append(days, s.Day(day))
	}
	s.log.Debugf("generated %d synthetic days from %s", len(days), lo.Format("2006-01-02"))
	return days, nil
}

// Day generates the signal for a single date.
func (s *Synthetic) Day(date time.Time) model.DaySignal {
	date = model.Day(date)
	rng := rand.New(rand.NewSource(s.seed + date.Unix()))

	// Winter days run dirtier than summer ones.
	yday := float64(date.YearDay())
	season := 1 + 0.18*math.Cos(2*math.Pi*(yday-15)/365.25)

	sig := model.DaySignal{Date: date}
	for h := 0; h < model.HoursPerDay; h++ {
		ci := baseIntensity[h]*season + rng.NormFloat64()*12
		if ci < 10 {
			ci = 10
		}
		share := 0.85 - ci/450 + rng.NormFloat64()*0.06
		sig.Intensity[h] = ci
		sig.Renewable[h] = model.ClampShare(share)
	}
	return sig
}
