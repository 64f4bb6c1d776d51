package scenario

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ewoodward/gridshift/core/results"
)

// Summarize aggregates reduction statistics per strategy. Flagged rows count
// as skipped and are excluded from the distribution. Summaries come back
// sorted by strategy name.
func Summarize(rows []results.DayResult) []results.Summary {
	byStrategy := map[string][]float64{}
	skipped := map[string]int{}
	for _, r := range rows {
		if !r.Valid {
			skipped[r.Strategy]++
			// Register the strategy even if every day was skipped.
			if _, ok := byStrategy[r.Strategy]; !ok {
				byStrategy[r.Strategy] = nil
			}
			continue
		}
		byStrategy[r.Strategy] = append(byStrategy[r.Strategy], r.ReductionPct)
	}

	names := make([]string, 0, len(byStrategy))
	for name := range byStrategy {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]results.Summary, 0, len(names))
	for _, name := range names {
		vals := byStrategy[name]
		s := results.Summary{
			Strategy: name,
			Days:     len(vals) + skipped[name],
			Skipped:  skipped[name],
		}
		if len(vals) > 0 {
			s.MeanPct = stat.Mean(vals, nil)
			s.MinPct = floats.Min(vals)
			s.MaxPct = floats.Max(vals)
			if len(vals) > 1 {
				s.StdPct = stat.StdDev(vals, nil)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
