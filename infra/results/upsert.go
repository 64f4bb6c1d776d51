package results

import (
	"sort"
	"time"

	"github.com/ewoodward/gridshift/core/model"
	coreresults "github.com/ewoodward/gridshift/core/results"
)

type rowKey struct {
	day      time.Time
	strategy string
}

// upsertSet deduplicates replayed rows by (date, strategy), keeping the
// last occurrence. File-backed stores replay their history through it.
type upsertSet struct {
	rows map[rowKey]coreresults.DayResult
}

func newUpsertSet() *upsertSet {
	return &upsertSet{rows: map[rowKey]coreresults.DayResult{}}
}

func (u *upsertSet) put(r coreresults.DayResult) {
	r.Date = model.Day(r.Date)
	u.rows[rowKey{day: r.Date, strategy: r.Strategy}] = r
}

// sorted returns the filtered rows ordered by date, then strategy.
func (u *upsertSet) sorted(q coreresults.Filter) []coreresults.DayResult {
	var res []coreresults.DayResult
	for _, r := range u.rows {
		if q.Matches(r) {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].Strategy < res[j].Strategy
	})
	return res
}
