package metrics

import "github.com/ewoodward/gridshift/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks    []factory.ModuleConfig `json:"sinks"`
	PromAddr string                 `json:"prom_addr"`
}
