// Package jsonfile persists the transaction log and settings as
// pretty-printed JSON files in a local data directory. It is the
// default backend: human-readable, greppable, trivially backed up.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"campuscoins/internal/core"
)

const (
	transactionsFile = "transactions.json"
	settingsFile     = "settings.json"
)

// Store reads and writes whole files. A missing or unreadable file
// loads as the empty log / default settings: a corrupt store must
// never take the app down, the session simply starts fresh.
type Store struct {
	dir string
}

// New creates the data directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadTransactions returns the saved log, or an empty log when the
// file is absent or does not hold a JSON array.
func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	path := filepath.Join(s.dir, transactionsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Could not read transactions file, starting empty",
				"path", path, "error", err)
		}
		return []core.Transaction{}, nil
	}

	var ts []core.Transaction
	if err := json.Unmarshal(data, &ts); err != nil {
		slog.WarnContext(ctx, "Corrupt transactions file, starting empty",
			"path", path, "error", err)
		return []core.Transaction{}, nil
	}
	return ts, nil
}

// SaveTransactions writes the whole log atomically (temp file +
// rename) so a crash mid-write leaves the previous save intact.
func (s *Store) SaveTransactions(ctx context.Context, ts []core.Transaction) error {
	if ts == nil {
		ts = []core.Transaction{}
	}
	return s.writeFile(ctx, transactionsFile, ts)
}

// LoadSettings returns the saved settings merged over the defaults, or
// the defaults alone when the file is absent or corrupt.
func (s *Store) LoadSettings(ctx context.Context) (core.Settings, error) {
	defaults := core.DefaultSettings()

	path := filepath.Join(s.dir, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Could not read settings file, using defaults",
				"path", path, "error", err)
		}
		return defaults, nil
	}

	// Unmarshal over the defaults: fields absent from the file keep
	// their default value, mirroring a shallow merge.
	settings := defaults.Clone()
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.WarnContext(ctx, "Corrupt settings file, using defaults",
			"path", path, "error", err)
		return defaults, nil
	}
	return settings, nil
}

// SaveSettings writes the settings file atomically.
func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	return s.writeFile(ctx, settingsFile, settings)
}

// Close is a no-op; files are closed after every write.
func (s *Store) Close() error {
	return nil
}

func (s *Store) writeFile(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	slog.DebugContext(ctx, "State saved", "path", path, "bytes", len(data))
	return nil
}
