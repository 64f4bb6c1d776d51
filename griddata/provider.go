// Package griddata supplies the engine with per-day grid signals. Three
// providers exist: a CSV reader for historical tables, an HTTP client for a
// remote carbon-intensity API and a seeded synthetic generator.
package griddata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/infra/logger"
)

// SignalProvider is the source of day signals consumed by the scenario
// runner. Implementations return chronologically ordered complete days
// inside [from, to]; incomplete days are dropped, never padded.
type SignalProvider interface {
	Days(ctx context.Context, from, to time.Time) ([]model.DaySignal, error)
}

// NewProvider creates a provider depending on cfg.Mode
// ("csv", "api" or "synthetic").
func NewProvider(cfg config.SignalConfig, log logger.Logger) (SignalProvider, error) {
	if log == nil {
		log = logger.New("griddata")
	}
	switch strings.ToLower(cfg.Mode) {
	case "csv":
		return NewCSVProvider(cfg.CSV, log), nil
	case "api":
		return NewAPIClient(cfg.API, log), nil
	case "synthetic", "":
		return NewSynthetic(cfg.Synthetic, log), nil
	default:
		return nil, fmt.Errorf("unknown signal mode %q", cfg.Mode)
	}
}
