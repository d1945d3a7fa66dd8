package store

import (
	"fmt"
)

// BackendType selects the document store implementation.
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}

// Config holds what Open needs per backend.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	PostgresDSN string
}

// Open creates the configured document store.
func Open(cfg Config) (Store, error) {
	switch cfg.Type {
	case MemoryBackend:
		return NewMemoryStore(), nil
	case SQLiteBackend:
		return NewSQLiteStore(cfg.SQLiteDBPath)
	case PostgresBackend:
		return NewPostgresStore(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Type)
	}
}
