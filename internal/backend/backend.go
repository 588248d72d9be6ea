// Package backend selects and constructs the storage implementation
// from configuration.
package backend

import (
	"fmt"

	"github.com/babburibeiro/WebAppCashUp/internal/config"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
	"github.com/babburibeiro/WebAppCashUp/internal/storage/memory"
)

// Type identifies a storage backend.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	}
	return false
}

// Open builds the store named by the app config. The returned store
// must be closed by the caller.
func Open(cfg *config.Config, logger *log.Logger) (storage.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app config is nil")
	}
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
	logger = logger.WithComponent(log.ComponentBackend)

	switch t {
	case SQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("sqlite backend initialized", "path", cfg.SQLiteDBPath)
		return store, nil
	case Memory:
		logger.Info("memory backend initialized")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
