package scenario

import (
	"errors"
	"math"
	"testing"

	"github.com/ewoodward/gridshift/core/model"
)

// The canonical acceptance day: intensity 200 everywhere except hours 2-5 at
// 50, demand spread evenly over the twenty expensive hours. Shifting the
// 4.2 flexible kWh into the four cheap hours must save exactly 22.5 %.
func TestSimulateDayCanonicalScenario(t *testing.T) {
	sig := cheapHoursSignal(200, 50, 2, 3, 4, 5)
	p := model.HouseholdProfile{DailyKWh: 14, FlexibleShare: 0.3}
	for h := range p.Weights {
		p.Weights[h] = 0.05
	}
	p.Weights[2], p.Weights[3], p.Weights[4], p.Weights[5] = 0, 0, 0, 0

	e := NewEngine(nil)
	res, err := e.SimulateDay(sig, p, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !equalInts(res.TargetHours, []int{2, 3, 4, 5}) {
		t.Fatalf("expected targets [2 3 4 5] got %v", res.TargetHours)
	}
	if math.Abs(res.BaselineG-2800) > 1e-6 {
		t.Fatalf("expected baseline 2800 got %v", res.BaselineG)
	}
	if math.Abs(res.ShiftedG-2170) > 1e-6 {
		t.Fatalf("expected shifted 2170 got %v", res.ShiftedG)
	}
	if math.Abs(res.ReductionPct-22.5) > 1e-9 {
		t.Fatalf("expected reduction 22.5 got %v", res.ReductionPct)
	}
	if !res.Valid {
		t.Fatalf("expected valid result")
	}
}

// Same day with demand in the cheap hours too: the baseline already benefits
// from them, so the saving is smaller but follows the same formulas.
func TestSimulateDayUniformWeights(t *testing.T) {
	sig := cheapHoursSignal(200, 50, 2, 3, 4, 5)
	p := uniformProfile(14, 0.3)

	e := NewEngine(nil)
	res, err := e.SimulateDay(sig, p, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	// Baseline: (14/24) kWh against sum(CI) = 20*200 + 4*50 = 4200.
	wantBase := 14.0 / 24.0 * 4200.0
	// Fixed remainder 9.8 kWh stays spread; 4.2 kWh lands at 50 g/kWh.
	wantShift := 9.8/24.0*4200.0 + 4.2*50.0
	if math.Abs(res.BaselineG-wantBase) > 1e-9 {
		t.Fatalf("expected baseline %v got %v", wantBase, res.BaselineG)
	}
	if math.Abs(res.ShiftedG-wantShift) > 1e-9 {
		t.Fatalf("expected shifted %v got %v", wantShift, res.ShiftedG)
	}
	wantRed := (wantBase - wantShift) / wantBase * 100
	if math.Abs(res.ReductionPct-wantRed) > 1e-9 {
		t.Fatalf("expected reduction %v got %v", wantRed, res.ReductionPct)
	}
	if res.ReductionPct <= 0 {
		t.Fatalf("shifting into cheaper hours must save emissions")
	}
}

// Renewable share peaking in the dirtiest hours drags flexible energy the
// wrong way: the reduction must come out negative.
func TestSimulateDayAdversarialNegativeReduction(t *testing.T) {
	sig := flatSignal(100, 0.2)
	for h := 18; h <= 21; h++ {
		sig.Intensity[h] = 400
		sig.Renewable[h] = 0.9
	}

	e := NewEngine(nil)
	res, err := e.SimulateDay(sig, uniformProfile(14, 0.3), model.StrategyMaxRenewable, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !equalInts(res.TargetHours, []int{18, 19, 20, 21}) {
		t.Fatalf("expected renewable peak hours, got %v", res.TargetHours)
	}
	if res.ReductionPct >= 0 {
		t.Fatalf("expected negative reduction, got %v", res.ReductionPct)
	}
}

func TestSimulateDayEVImprovesReduction(t *testing.T) {
	sig := cheapHoursSignal(200, 50, 2, 3, 4, 5)
	p := uniformProfile(14, 0.3)

	e := NewEngine(nil)
	noEV, err := e.SimulateDay(sig, p, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	// A permissive window covering the cheap hours: the whole EV block lands
	// at 50 g/kWh while its baseline averaged far above that.
	p.EV = model.EVConfig{Enabled: true, DailyKWh: 7, WindowStart: 0, WindowEnd: 23}
	withEV, err := e.SimulateDay(sig, p, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate with ev: %v", err)
	}
	if withEV.ReductionPct <= noEV.ReductionPct {
		t.Fatalf("expected ev to improve reduction: %v <= %v", withEV.ReductionPct, noEV.ReductionPct)
	}
	if math.Abs((withEV.Baseline[0]+withEV.Baseline[12])-(noEV.Baseline[0]+noEV.Baseline[12])-2*7.0/24.0) > 1e-9 {
		t.Fatalf("ev baseline not spread over the window")
	}
}

func TestSimulateDayEVWindowClamped(t *testing.T) {
	sig := cheapHoursSignal(200, 50, 2, 3, 4, 5)
	p := uniformProfile(14, 0.3)
	p.EV = model.EVConfig{Enabled: true, DailyKWh: 7, WindowStart: 20, WindowEnd: 21}

	e := NewEngine(nil)
	res, err := e.SimulateDay(sig, p, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !equalInts(res.EVTargets, []int{20, 21}) {
		t.Fatalf("expected ev targets clamped to [20 21], got %v", res.EVTargets)
	}
}

func TestSimulateDayEnergyConservedWithEV(t *testing.T) {
	sig := cheapHoursSignal(200, 50, 2, 3, 4, 5)
	p := uniformProfile(14, 0.3)
	p.EV = model.EVConfig{Enabled: true, DailyKWh: 7, WindowStart: 21, WindowEnd: 6}

	e := NewEngine(nil)
	res, err := e.SimulateDay(sig, p, model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	var baseTotal, shiftTotal float64
	for h := 0; h < model.HoursPerDay; h++ {
		baseTotal += res.Baseline[h]
		shiftTotal += res.Shifted[h]
	}
	if math.Abs(baseTotal-21) > 1e-9 {
		t.Fatalf("expected combined baseline 21 kWh got %v", baseTotal)
	}
	if math.Abs(shiftTotal-baseTotal)/baseTotal > 1e-9 {
		t.Fatalf("energy not conserved: %v vs %v", shiftTotal, baseTotal)
	}
}

func TestSimulateDayZeroBaselineFlagged(t *testing.T) {
	sig := flatSignal(0, 0.5)

	e := NewEngine(nil)
	res, err := e.SimulateDay(sig, uniformProfile(14, 0.3), model.StrategyLowIntensity, 4)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected flagged result for zero baseline")
	}
	if res.ReductionPct != 0 {
		t.Fatalf("expected zero reduction got %v", res.ReductionPct)
	}
	if res.Note == "" {
		t.Fatalf("expected explanatory note")
	}
}

func TestSimulateDayRejectsBadSignal(t *testing.T) {
	sig := flatSignal(200, 0.2)
	sig.Intensity[4] = -5
	e := NewEngine(nil)
	if _, err := e.SimulateDay(sig, uniformProfile(14, 0.3), model.StrategyLowIntensity, 4); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig got %v", err)
	}
}

func TestSimulateDayDeterministic(t *testing.T) {
	sig := cheapHoursSignal(180, 60, 1, 4, 11, 16)
	p := uniformProfile(12, 0.4)
	p.EV = model.EVConfig{Enabled: true, DailyKWh: 5, WindowStart: 19, WindowEnd: 7}

	e := NewEngine(nil)
	a, err := e.SimulateDay(sig, p, model.StrategyMaxRenewable, 3)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := e.SimulateDay(sig, p, model.StrategyMaxRenewable, 3)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if a.BaselineG != b.BaselineG || a.ShiftedG != b.ShiftedG || a.ReductionPct != b.ReductionPct {
		t.Fatalf("identical inputs produced different results: %+v vs %+v", a, b)
	}
	if !equalInts(a.TargetHours, b.TargetHours) || !equalInts(a.EVTargets, b.EVTargets) {
		t.Fatalf("target selection not deterministic")
	}
}
