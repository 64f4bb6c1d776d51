package results

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ewoodward/gridshift/core/model"
)

type memKey struct {
	day      time.Time
	strategy string
}

// MemoryStore keeps results in memory for tests and the serve command's
// default backend.
type MemoryStore struct {
	mu   sync.Mutex
	data map[memKey]DayResult
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[memKey]DayResult{}}
}

// Append stores the rows, replacing existing (date, strategy) entries.
func (s *MemoryStore) Append(_ context.Context, rows []DayResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		r.Date = model.Day(r.Date)
		s.data[memKey{day: r.Date, strategy: r.Strategy}] = r
	}
	return nil
}

// Query returns matching rows ordered by date, then strategy.
func (s *MemoryStore) Query(_ context.Context, f Filter) ([]DayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []DayResult
	for _, r := range s.data {
		if f.Matches(r) {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].Strategy < res[j].Strategy
	})
	return res, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error { return nil }
