// Package scenarios runs YAML-defined acceptance days against the engine.
// Each file describes one grid day, one household and the expected outcome.
package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ewoodward/gridshift/core/model"
)

type EVDef struct {
	Enabled     bool    `yaml:"enabled"`
	DailyKWh    float64 `yaml:"daily_kwh"`
	WindowStart int     `yaml:"window_start"`
	WindowEnd   int     `yaml:"window_end"`
}

type ProfileDef struct {
	DailyKWh      float64   `yaml:"daily_kwh"`
	FlexibleShare float64   `yaml:"flexible_share"`
	Weights       []float64 `yaml:"weights,omitempty"`
	EV            EVDef     `yaml:"ev,omitempty"`
}

// ToModel builds the household profile, falling back to the default diurnal
// shape when the scenario carries no weights.
func (p ProfileDef) ToModel() (model.HouseholdProfile, error) {
	prof := model.HouseholdProfile{
		DailyKWh:      p.DailyKWh,
		FlexibleShare: p.FlexibleShare,
		EV: model.EVConfig{
			Enabled:     p.EV.Enabled,
			DailyKWh:    p.EV.DailyKWh,
			WindowStart: p.EV.WindowStart,
			WindowEnd:   p.EV.WindowEnd,
		},
	}
	switch len(p.Weights) {
	case 0:
		prof.Weights = model.DefaultDiurnalShape()
	case model.HoursPerDay:
		copy(prof.Weights[:], p.Weights)
	default:
		return prof, fmt.Errorf("profile needs %d weights, got %d", model.HoursPerDay, len(p.Weights))
	}
	return prof, nil
}

type Expected struct {
	TargetHours  []int   `yaml:"target_hours,omitempty"`
	EVTargets    []int   `yaml:"ev_targets,omitempty"`
	ReductionPct float64 `yaml:"reduction_pct"`
	Tolerance    float64 `yaml:"tolerance,omitempty"`
	// Flagged marks days expected to come back invalid, such as a zero
	// emission baseline.
	Flagged bool `yaml:"flagged,omitempty"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Date        string     `yaml:"date,omitempty"`
	Intensity   []float64  `yaml:"intensity"`
	Renewable   []float64  `yaml:"renewable,omitempty"`
	Profile     ProfileDef `yaml:"profile"`
	Strategy    string     `yaml:"strategy"`
	Hours       int        `yaml:"hours"`
	Expected    Expected   `yaml:"expected"`
}

// Load reads one scenario definition from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Signal assembles the day signal described by the scenario.
func (s *Scenario) Signal() (model.DaySignal, error) {
	var sig model.DaySignal
	date := s.Date
	if date == "" {
		date = "2024-03-01"
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return sig, fmt.Errorf("bad date %q: %w", date, err)
	}
	sig.Date = model.Day(day)

	if len(s.Intensity) != model.HoursPerDay {
		return sig, fmt.Errorf("needs %d intensity values, got %d", model.HoursPerDay, len(s.Intensity))
	}
	copy(sig.Intensity[:], s.Intensity)
	switch len(s.Renewable) {
	case 0:
	case model.HoursPerDay:
		copy(sig.Renewable[:], s.Renewable)
	default:
		return sig, fmt.Errorf("needs %d renewable values, got %d", model.HoursPerDay, len(s.Renewable))
	}
	return sig, nil
}
