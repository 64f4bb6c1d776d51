package scenarios

import (
	"math"
	"testing"

	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/scenario"
)

const defaultTolerance = 0.05

// RunScenario simulates the described day and checks every stated
// expectation, plus energy conservation on the returned curves.
func RunScenario(t *testing.T, sc *Scenario) {
	sig, err := sc.Signal()
	if err != nil {
		t.Fatalf("signal: %v", err)
	}
	profile, err := sc.Profile.ToModel()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	strat, err := model.ParseStrategy(sc.Strategy)
	if err != nil {
		t.Fatalf("strategy: %v", err)
	}

	res, err := scenario.NewEngine(nil).SimulateDay(sig, profile, strat, sc.Hours)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if res.Valid == sc.Expected.Flagged {
		t.Errorf("scenario %s: valid=%v, expected flagged=%v", sc.Name, res.Valid, sc.Expected.Flagged)
	}
	if len(sc.Expected.TargetHours) > 0 && !equalInts(res.TargetHours, sc.Expected.TargetHours) {
		t.Errorf("scenario %s: targets %v, expected %v", sc.Name, res.TargetHours, sc.Expected.TargetHours)
	}
	if len(sc.Expected.EVTargets) > 0 && !equalInts(res.EVTargets, sc.Expected.EVTargets) {
		t.Errorf("scenario %s: ev targets %v, expected %v", sc.Name, res.EVTargets, sc.Expected.EVTargets)
	}

	tol := sc.Expected.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	if math.Abs(res.ReductionPct-sc.Expected.ReductionPct) > tol {
		t.Errorf("scenario %s: reduction %.4f%%, expected %.4f%% within %v",
			sc.Name, res.ReductionPct, sc.Expected.ReductionPct, tol)
	}

	var baseTotal, shiftTotal float64
	for h := 0; h < model.HoursPerDay; h++ {
		baseTotal += res.Baseline[h]
		shiftTotal += res.Shifted[h]
	}
	if baseTotal > 0 && math.Abs(shiftTotal-baseTotal)/baseTotal > 1e-9 {
		t.Errorf("scenario %s: energy not conserved: %v vs %v", sc.Name, shiftTotal, baseTotal)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
