package config

import (
	"fmt"
	"time"

	"github.com/ewoodward/gridshift/core/model"
)

const dateLayout = "2006-01-02"

// ScenarioConfig drives the sweep: which strategies, how many target hours,
// over which date range and how many days run concurrently.
type ScenarioConfig struct {
	Strategies  []string `json:"strategies"`
	TargetHours int      `json:"target_hours"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Workers     int      `json:"workers"`
}

// SetDefaults applies fallback values: both strategies, 4 target hours, a
// full 2024 sweep, sequential execution.
func (c *ScenarioConfig) SetDefaults() {
	if len(c.Strategies) == 0 {
		for _, s := range model.AllStrategies() {
			c.Strategies = append(c.Strategies, s.String())
		}
	}
	if c.TargetHours == 0 {
		c.TargetHours = 4
	}
	if c.From == "" {
		c.From = "2024-01-01"
	}
	if c.To == "" {
		c.To = "2024-12-31"
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
}

// Validate checks strategy names, hour count and the date range.
func (c ScenarioConfig) Validate() error {
	if _, err := c.StrategyList(); err != nil {
		return err
	}
	if c.TargetHours < 1 || c.TargetHours > model.HoursPerDay {
		return fmt.Errorf("target_hours %d outside [1,%d]", c.TargetHours, model.HoursPerDay)
	}
	from, to, err := c.Range()
	if err != nil {
		return err
	}
	if to.Before(from) {
		return fmt.Errorf("scenario range ends %s before it starts %s", c.To, c.From)
	}
	return nil
}

// StrategyList parses the configured strategy names.
func (c ScenarioConfig) StrategyList() ([]model.Strategy, error) {
	out := make([]model.Strategy, 0, len(c.Strategies))
	for _, name := range c.Strategies {
		s, err := model.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Range parses the configured date bounds as midnight UTC days.
func (c ScenarioConfig) Range() (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, c.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("scenario from: %w", err)
	}
	to, err := time.Parse(dateLayout, c.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("scenario to: %w", err)
	}
	return model.Day(from), model.Day(to), nil
}
