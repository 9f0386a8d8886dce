package journal

import (
	"fmt"

	"github.com/kilianp07/autorange/config"
)

// NewStore opens the journal backend selected by cfg.
func NewStore(cfg config.JournalConfig) (Store, error) {
	switch cfg.Backend {
	case "jsonl", "":
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Backend)
	}
}
