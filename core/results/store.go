package results

import (
	"context"
	"time"
)

// Filter narrows a Query. Zero values match everything.
type Filter struct {
	From     time.Time
	To       time.Time
	Strategy string
}

// Matches reports whether the row passes the filter. Date bounds are
// inclusive and compared on day boundaries.
func (f Filter) Matches(r DayResult) bool {
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(f.To) {
		return false
	}
	if f.Strategy != "" && r.Strategy != f.Strategy {
		return false
	}
	return true
}

// Store persists day results and supports querying them back in
// chronological order. Appending an existing (date, strategy) key replaces
// the stored row.
type Store interface {
	Append(ctx context.Context, rows []DayResult) error
	Query(ctx context.Context, f Filter) ([]DayResult, error)
	Close() error
}
