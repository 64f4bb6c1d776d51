package griddata

import (
	"sort"
	"time"

	"github.com/ewoodward/gridshift/core/logger"
	"github.com/ewoodward/gridshift/core/model"
)

// hourlyPoint is one hour of grid data before day assembly.
type hourlyPoint struct {
	ts        time.Time
	intensity float64
	renewable float64
}

// buildDays groups hourly points into UTC days and keeps the complete ones
// inside [from, to]. A zero bound leaves that side of the range open. Days
// with missing hours or invalid values are skipped with a warning.
func buildDays(points []hourlyPoint, from, to time.Time, log logger.Logger) []model.DaySignal {
	type accum struct {
		sig  model.DaySignal
		seen [model.HoursPerDay]bool
	}
	byDay := make(map[time.Time]*accum)
	for _, p := range points {
		ts := p.ts.UTC()
		day := model.Day(ts)
		a := byDay[day]
		if a == nil {
			a = &accum{sig: model.DaySignal{Date: day}}
			byDay[day] = a
		}
		h := ts.Hour()
		a.sig.Intensity[h] = p.intensity
		a.sig.Renewable[h] = model.ClampShare(p.renewable)
		a.seen[h] = true
	}

	lo, hi := model.Day(from), model.Day(to)
	days := make([]model.DaySignal, 0, len(byDay))
	for day, a := range byDay {
		if !from.IsZero() && day.Before(lo) {
			continue
		}
		if !to.IsZero() && day.After(hi) {
			continue
		}
		present := 0
		for _, ok := range a.seen {
			if ok {
				present++
			}
		}
		if present != model.HoursPerDay {
			log.Warnf("skipping %s: %d of %d hours present", day.Format("2006-01-02"), present, model.HoursPerDay)
			continue
		}
		if err := a.sig.Validate(); err != nil {
			log.Warnf("skipping %s: %v", day.Format("2006-01-02"), err)
			continue
		}
		days = append(days, a.sig)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
