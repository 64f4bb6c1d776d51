package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/ewoodward/gridshift/core/logger"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/results"
)

// Runner sweeps a day sequence across strategies. Each (day, strategy) pair
// is independent, so days can fan out to a worker pool; results land in
// indexed slots and come back in input day order regardless of worker count.
type Runner struct {
	engine  *Engine
	workers int
	log     logger.Logger
}

// NewRunner creates a Runner executing at most workers days concurrently.
// Workers below 1 run the sweep sequentially.
func NewRunner(engine *Engine, workers int, log logger.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Runner{engine: engine, workers: workers, log: log}
}

// Run simulates every day under every strategy and returns one DayResult per
// pair, ordered by day then strategy. Configuration errors abort the sweep;
// flagged days (zero baseline) are carried through in the output. The
// context is honored between day simulations.
func (r *Runner) Run(ctx context.Context, days []model.DaySignal, p model.HouseholdProfile, strategies []model.Strategy, n int) ([]results.DayResult, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies selected", ErrConfig)
	}
	if len(days) == 0 {
		return nil, nil
	}

	perDay := len(strategies)
	out := make([]results.DayResult, len(days)*perDay)
	simulate := func(i int) error {
		for j, s := range strategies {
			res, err := r.engine.SimulateDay(days[i], p, s, n)
			if err != nil {
				return fmt.Errorf("day %s: %w", days[i].Date.Format("2006-01-02"), err)
			}
			out[i*perDay+j] = res
		}
		return nil
	}

	if r.workers == 1 {
		for i := range days {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := simulate(i); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed {
					continue
				}
				if err := simulate(i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range days {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
