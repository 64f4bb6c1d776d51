package results

import (
	"time"

	"github.com/ewoodward/gridshift/core/model"
)

// DayResult is the outcome of simulating one (day, strategy) pair. Rows are
// immutable once produced; stores key them by (date, strategy) with
// last-write-wins semantics.
type DayResult struct {
	Date         time.Time `json:"date"`
	Strategy     string    `json:"strategy"`
	BaselineG    float64   `json:"baseline_g"`
	ShiftedG     float64   `json:"shifted_g"`
	ReductionPct float64   `json:"reduction_pct"`
	TargetHours  []int     `json:"target_hours"`
	EVTargets    []int     `json:"ev_targets,omitempty"`
	// Valid is false for data edge cases such as a zero-emission baseline
	// day. Invalid rows are kept in the table but excluded from summary
	// statistics.
	Valid bool   `json:"valid"`
	Note  string `json:"note,omitempty"`

	// Hourly curves in kWh, carried for day-detail display. Stores may
	// drop them; they are reproducible from the inputs.
	Baseline [model.HoursPerDay]float64 `json:"baseline_curve"`
	Shifted  [model.HoursPerDay]float64 `json:"shifted_curve"`
}

// Summary aggregates reduction statistics for one strategy over a run.
type Summary struct {
	Strategy string  `json:"strategy"`
	Days     int     `json:"days"`
	Skipped  int     `json:"skipped"`
	MeanPct  float64 `json:"mean_pct"`
	StdPct   float64 `json:"std_pct"`
	MinPct   float64 `json:"min_pct"`
	MaxPct   float64 `json:"max_pct"`
}
