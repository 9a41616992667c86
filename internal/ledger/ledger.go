// Package ledger holds the in-process state: the transaction log and
// the settings record. It is the single owner of mutable state, saves
// on every mutation and serializes access behind one mutex so multiple
// writers (HTTP handlers) cannot interleave a merge with a save.
package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"campuscoins/internal/core"
	"campuscoins/internal/importer"
	"campuscoins/internal/log"
	"campuscoins/internal/store"
)

// ErrCategoryExists rejects adding a category name already configured.
var ErrCategoryExists = errors.New("Category already exists.")

type (
	// Update carries a full-field replacement for one transaction. ID
	// and CreatedAt are immutable; UpdatedAt is bumped by the ledger.
	Update struct {
		Description string
		Amount      core.Money
		Category    string
		Date        string
	}

	Ledger struct {
		mu           sync.Mutex
		store        store.Store
		logger       *log.Logger
		transactions []core.Transaction
		settings     core.Settings
		gen          uint64
		now          func() time.Time
	}
)

// Open loads state from the store. Backends degrade gracefully on
// absent or corrupt state, so an error here means the environment
// itself is broken.
func Open(ctx context.Context, st store.Store, logger *log.Logger) (*Ledger, error) {
	l := &Ledger{
		store:  st,
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}

	ts, err := st.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := st.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}

	l.transactions = ts
	l.settings = settings
	l.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(ts))
	return l, nil
}

// Transactions returns a copy of the log; callers get a borrowed view
// and can never mutate ledger state through it.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.transactions...)
}

// Settings returns a copy of the settings record.
func (l *Ledger) Settings() core.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings.Clone()
}

// Generation increments on every mutation, settings included: the
// dashboard summary depends on the budget, so a settings change must
// invalidate cached aggregates just like a log change. The dashboard
// cache keys on it so stale aggregates are never served.
func (l *Ledger) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Add records a new transaction at the head of the log (newest first)
// and saves.
func (l *Ledger) Add(ctx context.Context, description string, amount core.Money, category, date string) core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := core.NewTransaction(description, amount, category, date, l.now())
	l.transactions = append([]core.Transaction{t}, l.transactions...)
	l.commit(ctx, log.OpCreate)
	return t
}

// Update replaces every user-editable field of the identified
// transaction and bumps UpdatedAt. Returns false for an unknown id.
func (l *Ledger) Update(ctx context.Context, id string, u Update) (core.Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.transactions {
		if l.transactions[i].ID != id {
			continue
		}
		t := &l.transactions[i]
		t.Description = u.Description
		t.Amount = u.Amount
		t.Category = u.Category
		t.Date = u.Date
		t.UpdatedAt = l.now()
		l.commit(ctx, log.OpUpdate)
		return *t, true
	}
	return core.Transaction{}, false
}

// Delete removes the identified transaction. Returns false for an
// unknown id.
func (l *Ledger) Delete(ctx context.Context, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.transactions {
		if l.transactions[i].ID != id {
			continue
		}
		l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
		l.commit(ctx, log.OpDelete)
		return true
	}
	return false
}

// Get returns the identified transaction.
func (l *Ledger) Get(id string) (core.Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Clear discards the whole log.
func (l *Ledger) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = []core.Transaction{}
	l.commit(ctx, log.OpClear)
}

// MergeImport merges a batch of files into the log: only records that
// duplicate nothing already present (or already merged earlier in the
// batch) are appended. Re-running the same batch adds nothing.
func (l *Ledger) MergeImport(ctx context.Context, files []importer.File) importer.Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := importer.MergeFiles(l.transactions, files, l.now())
	if len(res.Added) > 0 {
		l.transactions = append(l.transactions, res.Added...)
		l.commit(ctx, log.OpImport)
	}
	l.logger.InfoContext(ctx, "Merge import finished",
		log.FieldOperation, log.OpImport,
		"new", res.NewCount,
		"duplicates", res.DuplicateCount,
		"invalid", res.InvalidCount,
		"file_errors", len(res.FileErrors))
	return res
}

// ReplaceImport discards the existing log and installs the imported
// records. Distinct from merge: no duplicate detection.
func (l *Ledger) ReplaceImport(ctx context.Context, files []importer.File) importer.Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	replacement, res := importer.Replace(files, l.now())
	l.transactions = replacement
	l.commit(ctx, log.OpImport)
	l.logger.InfoContext(ctx, "Replace import finished",
		log.FieldOperation, log.OpImport,
		"installed", res.NewCount,
		"invalid", res.InvalidCount,
		"file_errors", len(res.FileErrors))
	return res
}

// UpdateSettings applies a shallow patch and saves.
func (l *Ledger) UpdateSettings(ctx context.Context, patch core.SettingsPatch) core.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings = l.settings.Merge(patch)
	l.persistSettings(ctx)
	return l.settings.Clone()
}

// AddCategory appends a trimmed category name, rejecting duplicates.
func (l *Ledger) AddCategory(ctx context.Context, name string) error {
	if err := core.ValidateCategory(name); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.settings.HasCategory(name) {
		return ErrCategoryExists
	}
	l.settings.Categories = append(l.settings.Categories, strings.TrimSpace(name))
	l.persistSettings(ctx)
	return nil
}

// RemoveCategory drops the named category. Existing transactions keep
// their category: it is checked at entry time only.
func (l *Ledger) RemoveCategory(ctx context.Context, name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.settings.Categories[:0:0]
	removed := false
	for _, c := range l.settings.Categories {
		if c == name {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if removed {
		l.settings.Categories = kept
		l.persistSettings(ctx)
	}
	return removed
}

// commit saves the log after a mutation. A failed save is logged and
// the session continues from memory; durable state catches up on the
// next successful save.
func (l *Ledger) commit(ctx context.Context, op string) {
	l.gen++
	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		l.logger.ErrorContext(ctx, "Could not save transactions",
			log.FieldOperation, op,
			log.FieldError, err)
	}
}

func (l *Ledger) persistSettings(ctx context.Context) {
	l.gen++
	if err := l.store.SaveSettings(ctx, l.settings); err != nil {
		l.logger.ErrorContext(ctx, "Could not save settings",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
	}
}
