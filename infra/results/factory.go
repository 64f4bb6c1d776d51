package results

import (
	"fmt"

	"github.com/ewoodward/gridshift/config"
	coreresults "github.com/ewoodward/gridshift/core/results"
)

// New builds the configured store backend.
func New(cfg config.StoreConfig) (coreresults.Store, error) {
	switch cfg.Backend {
	case "memory":
		return coreresults.NewMemoryStore(), nil
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "jsonl_rotating":
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %s", cfg.Backend)
	}
}
