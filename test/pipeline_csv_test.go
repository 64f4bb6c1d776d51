package test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/scenario"
	"github.com/ewoodward/gridshift/griddata"
)

// A synthetic window exported with WriteTable and read back through the CSV
// provider must drive the engine to the same per-day reductions as the
// in-memory signals.
func TestCSVExportMatchesSyntheticRun(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 4)

	gen := griddata.NewSynthetic(config.SyntheticConfig{Seed: 7}, nil)
	direct, err := gen.Days(ctx, from, to)
	if err != nil {
		t.Fatalf("synthetic days: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grid.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := griddata.WriteTable(f, direct); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	prov := griddata.NewCSVProvider(config.CSVSignalConfig{Path: path, Source: "actual"}, nil)
	fromCSV, err := prov.Days(ctx, from, to)
	if err != nil {
		t.Fatalf("csv days: %v", err)
	}
	if len(fromCSV) != len(direct) {
		t.Fatalf("day count differs: %d vs %d", len(fromCSV), len(direct))
	}

	profile := model.HouseholdProfile{
		DailyKWh:      14,
		FlexibleShare: 0.3,
		Weights:       model.DefaultDiurnalShape(),
	}
	engine := scenario.NewEngine(nil)
	for i := range direct {
		a, err := engine.SimulateDay(direct[i], profile, model.StrategyLowIntensity, 4)
		if err != nil {
			t.Fatalf("simulate direct: %v", err)
		}
		b, err := engine.SimulateDay(fromCSV[i], profile, model.StrategyLowIntensity, 4)
		if err != nil {
			t.Fatalf("simulate csv: %v", err)
		}
		if math.Abs(a.ReductionPct-b.ReductionPct) > 1e-9 {
			t.Fatalf("day %s: reduction differs %v vs %v",
				direct[i].Date.Format("2006-01-02"), a.ReductionPct, b.ReductionPct)
		}
	}
}
