package config

import (
	"fmt"
	"strings"

	"github.com/ewoodward/gridshift/griddata/auth"
)

// SignalConfig selects and configures the grid signal source.
type SignalConfig struct {
	// Mode selects the provider: "csv", "api" or "synthetic".
	Mode      string          `json:"mode"`
	CSV       CSVSignalConfig `json:"csv"`
	API       APISignalConfig `json:"api"`
	Synthetic SyntheticConfig `json:"synthetic"`
}

// CSVSignalConfig points the csv provider at an hourly grid data table.
type CSVSignalConfig struct {
	Path string `json:"path"`
	// Source picks the intensity column: "actual" or "forecast".
	Source string `json:"source"`
}

// APISignalConfig configures the remote carbon intensity API.
type APISignalConfig struct {
	URL  string    `json:"url"`
	Auth auth.Conf `json:"auth"`
}

// SyntheticConfig seeds the deterministic signal generator. Days and Start
// drive the synth command when no flags are given.
type SyntheticConfig struct {
	Seed  int64  `json:"seed"`
	Days  int    `json:"days"`
	Start string `json:"start"`
}

// SetDefaults applies fallback values for optional fields.
func (c *SignalConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "synthetic"
	}
	if c.CSV.Source == "" {
		c.CSV.Source = "actual"
	}
	if c.Synthetic.Seed == 0 {
		c.Synthetic.Seed = 42
	}
	if c.Synthetic.Days <= 0 {
		c.Synthetic.Days = 30
	}
	if c.Synthetic.Start == "" {
		c.Synthetic.Start = "2024-01-01"
	}
}

// Validate checks the mode and its selected source.
func (c SignalConfig) Validate() error {
	switch strings.ToLower(c.Mode) {
	case "csv":
		if c.CSV.Path == "" {
			return fmt.Errorf("signal csv path is required")
		}
		if s := strings.ToLower(c.CSV.Source); s != "actual" && s != "forecast" {
			return fmt.Errorf("unknown csv source %s", c.CSV.Source)
		}
	case "api":
		if c.API.URL == "" {
			return fmt.Errorf("signal api url is required")
		}
	case "synthetic", "":
	default:
		return fmt.Errorf("unknown signal mode %s", c.Mode)
	}
	return nil
}
