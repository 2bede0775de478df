package snapshot

import (
	"fmt"

	"svdata-hq/svast/pkg/config"
)

// Open creates the store selected by cfg.Backend.
func Open(cfg *config.SnapshotsConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return NewSQLiteStore(cfg.SQLite)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}
