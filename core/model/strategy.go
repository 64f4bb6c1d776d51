package model

import "fmt"

// Strategy selects which hours receive redistributed flexible energy.
type Strategy int

const (
	// StrategyLowIntensity targets the hours with the lowest carbon intensity.
	StrategyLowIntensity Strategy = iota
	// StrategyMaxRenewable targets the hours with the highest renewable share.
	StrategyMaxRenewable
)

// String returns the canonical name used in configs, stores and topics.
func (s Strategy) String() string {
	switch s {
	case StrategyLowIntensity:
		return "low_intensity"
	case StrategyMaxRenewable:
		return "max_renewable"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a canonical name back into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "low_intensity":
		return StrategyLowIntensity, nil
	case "max_renewable":
		return StrategyMaxRenewable, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %s", s)
	}
}

// AllStrategies lists every selection policy in deterministic order.
func AllStrategies() []Strategy {
	return []Strategy{StrategyLowIntensity, StrategyMaxRenewable}
}
