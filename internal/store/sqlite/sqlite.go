// Package sqlite persists the transaction log and settings in a local
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"campuscoins/internal/core"
)

// Store keeps the log in a transactions table ordered by an explicit
// position column, so the ledger's log order (newest first) survives a
// round trip. Saves replace the whole table inside one transaction:
// the log is small and the in-memory copy is the source of truth.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the database and applies
// migrations.
func New(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = filepath.Join("data", "campuscoins.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadTransactions reads the whole log in saved order.
func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := sq.Select("id", "description", "amount_cents", "category", "date", "created_at", "updated_at").
		From("transactions").
		OrderBy("position").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	ts := []core.Transaction{}
	for rows.Next() {
		var (
			t                    core.Transaction
			createdAt, updatedAt string
		)
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount.Cents, &t.Category, &t.Date, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.CreatedAt = parseTime(ctx, createdAt)
		t.UpdatedAt = parseTime(ctx, updatedAt)
		ts = append(ts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return ts, nil
}

// SaveTransactions replaces the stored log with ts, preserving slice
// order through the position column.
func (s *Store) SaveTransactions(ctx context.Context, ts []core.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	if len(ts) > 0 {
		insert := sq.Insert("transactions").
			Columns("id", "position", "description", "amount_cents", "category", "date", "created_at", "updated_at")
		for i, t := range ts {
			insert = insert.Values(
				t.ID, i, t.Description, t.Amount.Cents, t.Category, t.Date,
				t.CreatedAt.UTC().Format(time.RFC3339Nano),
				t.UpdatedAt.UTC().Format(time.RFC3339Nano),
			)
		}
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("insert transactions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadSettings reads the single settings row, returning defaults when
// none has been saved yet.
func (s *Store) LoadSettings(ctx context.Context) (core.Settings, error) {
	var (
		settings         = core.DefaultSettings()
		categories, rates string
	)
	err := sq.Select("budget_cents", "currency", "theme", "categories", "rates").
		From("settings").
		Where(sq.Eq{"id": 1}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&settings.Budget.Cents, &settings.Currency, &settings.Theme, &categories, &rates)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.DefaultSettings(), fmt.Errorf("query settings: %w", err)
	}

	if err := json.Unmarshal([]byte(categories), &settings.Categories); err != nil {
		slog.WarnContext(ctx, "Corrupt categories column, keeping defaults", "error", err)
		settings.Categories = core.DefaultSettings().Categories
	}
	if err := json.Unmarshal([]byte(rates), &settings.Rates); err != nil {
		slog.WarnContext(ctx, "Corrupt rates column, keeping defaults", "error", err)
		settings.Rates = core.DefaultSettings().Rates
	}
	return settings, nil
}

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	categories, err := json.Marshal(settings.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	rates, err := json.Marshal(settings.Rates)
	if err != nil {
		return fmt.Errorf("marshal rates: %w", err)
	}

	_, err = sq.Insert("settings").
		Columns("id", "budget_cents", "currency", "theme", "categories", "rates").
		Values(1, settings.Budget.Cents, settings.Currency, string(settings.Theme), string(categories), string(rates)).
		Suffix("ON CONFLICT(id) DO UPDATE SET " +
			"budget_cents = excluded.budget_cents, " +
			"currency = excluded.currency, " +
			"theme = excluded.theme, " +
			"categories = excluded.categories, " +
			"rates = excluded.rates").
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func parseTime(ctx context.Context, s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		slog.DebugContext(ctx, "Unparseable timestamp column", "value", s, "error", err)
		return time.Time{}
	}
	return t
}
