// Package backfill fills gaps in a results store by simulating only the
// (date, strategy) pairs that have no stored row yet.
package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/ewoodward/gridshift/core/logger"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/results"
	"github.com/ewoodward/gridshift/core/scenario"
)

type pairKey struct {
	day      time.Time
	strategy string
}

// Backfill queries the store for the span covered by days, simulates every
// missing (date, strategy) pair and appends the new rows. Existing rows are
// left untouched, so re-running the job is idempotent. It returns the number
// of rows added.
func Backfill(ctx context.Context, store results.Store, days []model.DaySignal, profile model.HouseholdProfile, strategies []model.Strategy, n int, engine *scenario.Engine, log logger.Logger) (int, error) {
	if len(days) == 0 || len(strategies) == 0 {
		return 0, nil
	}

	from, to := days[0].Date, days[0].Date
	for _, d := range days[1:] {
		if d.Date.Before(from) {
			from = d.Date
		}
		if d.Date.After(to) {
			to = d.Date
		}
	}

	existing, err := store.Query(ctx, results.Filter{From: from, To: to})
	if err != nil {
		return 0, fmt.Errorf("query existing rows: %w", err)
	}
	have := make(map[pairKey]struct{}, len(existing))
	for _, r := range existing {
		have[pairKey{day: model.Day(r.Date), strategy: r.Strategy}] = struct{}{}
	}

	var added []results.DayResult
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for _, strat := range strategies {
			key := pairKey{day: model.Day(day.Date), strategy: strat.String()}
			if _, ok := have[key]; ok {
				continue
			}
			row, err := engine.SimulateDay(day, profile, strat, n)
			if err != nil {
				return 0, fmt.Errorf("simulate %s %s: %w", day.Date.Format("2006-01-02"), strat, err)
			}
			added = append(added, row)
		}
	}
	if len(added) == 0 {
		if log != nil {
			log.Infof("backfill: store already covers %d days, nothing to do", len(days))
		}
		return 0, nil
	}

	if err := store.Append(ctx, added); err != nil {
		return 0, fmt.Errorf("append backfilled rows: %w", err)
	}
	if log != nil {
		log.Infof("backfill: added %d rows over %d days", len(added), len(days))
	}
	return len(added), nil
}
