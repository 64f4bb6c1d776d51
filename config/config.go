package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ewoodward/gridshift/core/metrics"
	"github.com/ewoodward/gridshift/infra/mqtt"
)

type Config struct {
	Logging   LoggingConfig   `json:"logging"`
	Signal    SignalConfig    `json:"signal"`
	Household HouseholdConfig `json:"household"`
	Scenario  ScenarioConfig  `json:"scenario"`
	Store     StoreConfig     `json:"store"`
	Metrics   metrics.Config  `json:"metrics"`
	MQTT      mqtt.Config     `json:"mqtt"`
	API       APIConfig       `json:"api"`
	Sentry    SentryConfig    `json:"sentry"`
}

// SetDefaults fills every section with its fallback values.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.Signal.SetDefaults()
	c.Household.SetDefaults()
	c.Scenario.SetDefaults()
	c.Store.SetDefaults()
	c.API.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Signal.Validate(); err != nil {
		return err
	}
	if err := c.Household.Validate(); err != nil {
		return err
	}
	if err := c.Scenario.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.API.Validate()
}

// Default returns a configuration carrying only the fallback values. Used by
// commands running without a config file.
func Default() *Config {
	var c Config
	c.SetDefaults()
	return &c
}

// Load reads the file at path, applies GS_ environment overrides, fills
// defaults and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("GS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
