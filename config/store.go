package config

import "fmt"

// StoreConfig selects where day results are persisted.
type StoreConfig struct {
	// Backend is one of "memory", "jsonl", "jsonl_rotating" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store. Unused by the memory backend.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" && c.Backend != "memory" {
		c.Path = "results.jsonl"
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	switch c.Backend {
	case "memory":
		return nil
	case "jsonl", "jsonl_rotating", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("store path is required")
		}
		return nil
	default:
		return fmt.Errorf("unknown store backend %s", c.Backend)
	}
}
