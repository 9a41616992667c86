// Package store defines the persistence collaborator: whole-log load
// and save of transactions and settings, plus the backend factory.
package store

import (
	"context"
	"fmt"

	"campuscoins/internal/core"
	"campuscoins/internal/store/jsonfile"
	"campuscoins/internal/store/sqlite"
)

const (
	JSONFileBackend Type = "jsonfile"
	SQLiteBackend   Type = "sqlite"
)

type (
	// Type names a persistence backend.
	Type string

	// Store owns durable state. The log is always saved whole: the
	// in-memory ledger is the source of truth and mutations are small.
	// Load operations degrade gracefully (empty log / default settings)
	// instead of failing on absent or corrupt state; only genuinely
	// broken environments return errors.
	Store interface {
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, ts []core.Transaction) error
		LoadSettings(ctx context.Context) (core.Settings, error)
		SaveSettings(ctx context.Context, s core.Settings) error
		Close() error
	}

	// Config selects and parameterizes a backend.
	Config struct {
		Type Type

		// jsonfile
		DataDir string

		// sqlite
		SQLiteDBPath string
	}
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case JSONFileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Open builds the configured backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Type {
	case JSONFileBackend:
		return jsonfile.New(cfg.DataDir)
	case SQLiteBackend:
		return sqlite.New(cfg.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
