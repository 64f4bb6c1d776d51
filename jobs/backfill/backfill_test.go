package backfill

import (
	"context"
	"testing"
	"time"

	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/results"
	"github.com/ewoodward/gridshift/core/scenario"
)

func flatSignal(date time.Time) model.DaySignal {
	sig := model.DaySignal{Date: date}
	for h := 0; h < model.HoursPerDay; h++ {
		sig.Intensity[h] = 200
		sig.Renewable[h] = 0.4
	}
	sig.Intensity[3] = 50
	return sig
}

func testProfile() model.HouseholdProfile {
	return model.HouseholdProfile{
		DailyKWh:      14,
		FlexibleShare: 0.3,
		Weights:       model.DefaultDiurnalShape(),
	}
}

func TestBackfillAddsOnlyMissingPairs(t *testing.T) {
	ctx := context.Background()
	store := results.NewMemoryStore()
	engine := scenario.NewEngine(nil)
	profile := testProfile()
	strategies := []model.Strategy{model.StrategyLowIntensity, model.StrategyMaxRenewable}

	days := []model.DaySignal{
		flatSignal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		flatSignal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
		flatSignal(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
	}

	// Pre-seed one pair so the job must skip it.
	seeded, err := engine.SimulateDay(days[1], profile, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("seed simulate: %v", err)
	}
	if err := store.Append(ctx, []results.DayResult{seeded}); err != nil {
		t.Fatalf("seed append: %v", err)
	}

	added, err := Backfill(ctx, store, days, profile, strategies, 4, engine, nil)
	if err != nil {
		t.Fatalf("Backfill returned error: %v", err)
	}
	if added != 5 {
		t.Fatalf("expected 5 rows added (6 pairs, 1 seeded), got %d", added)
	}

	rows, err := store.Query(ctx, results.Filter{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows in store, got %d", len(rows))
	}
}

func TestBackfillIdempotent(t *testing.T) {
	ctx := context.Background()
	store := results.NewMemoryStore()
	engine := scenario.NewEngine(nil)
	profile := testProfile()
	strategies := []model.Strategy{model.StrategyLowIntensity}

	days := []model.DaySignal{flatSignal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))}

	added, err := Backfill(ctx, store, days, profile, strategies, 4, engine, nil)
	if err != nil || added != 1 {
		t.Fatalf("first run: added=%d err=%v", added, err)
	}
	added, err = Backfill(ctx, store, days, profile, strategies, 4, engine, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if added != 0 {
		t.Fatalf("second run should add nothing, added %d", added)
	}
}

func TestBackfillEmptyInputs(t *testing.T) {
	ctx := context.Background()
	store := results.NewMemoryStore()
	engine := scenario.NewEngine(nil)

	added, err := Backfill(ctx, store, nil, testProfile(), []model.Strategy{model.StrategyLowIntensity}, 4, engine, nil)
	if err != nil || added != 0 {
		t.Fatalf("nil days: added=%d err=%v", added, err)
	}
	added, err = Backfill(ctx, store, []model.DaySignal{flatSignal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))}, testProfile(), nil, 4, engine, nil)
	if err != nil || added != 0 {
		t.Fatalf("nil strategies: added=%d err=%v", added, err)
	}
}

func TestBackfillSimulateError(t *testing.T) {
	ctx := context.Background()
	store := results.NewMemoryStore()
	engine := scenario.NewEngine(nil)

	days := []model.DaySignal{flatSignal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))}
	_, err := Backfill(ctx, store, days, testProfile(), []model.Strategy{model.StrategyLowIntensity}, 0, engine, nil)
	if err == nil {
		t.Fatal("expected error for zero target hours")
	}
	rows, qerr := store.Query(ctx, results.Filter{})
	if qerr != nil || len(rows) != 0 {
		t.Fatalf("store should stay empty on error, rows=%d err=%v", len(rows), qerr)
	}
}
