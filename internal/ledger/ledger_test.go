package ledger

import (
	"context"
	"testing"
	"time"

	"campuscoins/internal/core"
	"campuscoins/internal/importer"
	"campuscoins/internal/log"
	"campuscoins/internal/store/jsonfile"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	st, err := jsonfile.New(t.TempDir())
	if err != nil {
		t.Fatalf("jsonfile.New: %v", err)
	}
	l, err := Open(context.Background(), st, log.New(log.DefaultConfig()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l
}

func TestAddPrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	first := l.Add(ctx, "Lunch", core.Money{Cents: 1250}, "Food", "2025-01-01")
	second := l.Add(ctx, "Bus", core.Money{Cents: 300}, "Transport", "2025-01-02")

	ts := l.Transactions()
	if len(ts) != 2 {
		t.Fatalf("len = %d, want 2", len(ts))
	}
	if ts[0].ID != second.ID || ts[1].ID != first.ID {
		t.Fatal("newest transaction must come first")
	}

	// A fresh ledger over the same store sees the saved state.
	reopened, err := Open(ctx, mustStore(t, l), log.New(log.DefaultConfig()))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Transactions(); len(got) != 2 || got[0].ID != second.ID {
		t.Fatalf("reopened ledger state wrong: %d records", len(got))
	}
}

func mustStore(t *testing.T, l *Ledger) *jsonfile.Store {
	t.Helper()
	st, ok := l.store.(*jsonfile.Store)
	if !ok {
		t.Fatal("test ledger should use the jsonfile store")
	}
	return st
}

func TestUpdateReplacesFieldsAndBumpsTimestamp(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return created }
	orig := l.Add(ctx, "Lunch", core.Money{Cents: 1250}, "Food", "2025-01-01")

	l.now = func() time.Time { return updated }
	got, ok := l.Update(ctx, orig.ID, Update{
		Description: "Team lunch",
		Amount:      core.Money{Cents: 2000},
		Category:    "Food",
		Date:        "2025-01-02",
	})
	if !ok {
		t.Fatal("update should find the record")
	}
	if got.ID != orig.ID {
		t.Fatal("id must never change")
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatal("createdAt is immutable")
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatal("updatedAt must be bumped")
	}
	if got.Description != "Team lunch" || got.Amount.Cents != 2000 || got.Date != "2025-01-02" {
		t.Fatalf("fields not replaced: %+v", got)
	}

	if _, ok := l.Update(ctx, "missing", Update{}); ok {
		t.Fatal("unknown id must report false")
	}
}

func TestDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	a := l.Add(ctx, "Lunch", core.Money{Cents: 100}, "Food", "2025-01-01")
	l.Add(ctx, "Bus", core.Money{Cents: 200}, "Transport", "2025-01-02")

	if !l.Delete(ctx, a.ID) {
		t.Fatal("delete should find the record")
	}
	if l.Delete(ctx, a.ID) {
		t.Fatal("second delete must report false")
	}
	if len(l.Transactions()) != 1 {
		t.Fatal("one record should remain")
	}

	l.Clear(ctx)
	if len(l.Transactions()) != 0 {
		t.Fatal("clear must empty the log")
	}
}

func TestGenerationAdvancesOnMutation(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	g0 := l.Generation()
	l.Add(ctx, "Lunch", core.Money{Cents: 100}, "Food", "2025-01-01")
	if l.Generation() == g0 {
		t.Fatal("generation must advance on add")
	}

	g1 := l.Generation()
	_ = l.Transactions()
	_ = l.Settings()
	if l.Generation() != g1 {
		t.Fatal("reads must not advance the generation")
	}

	// Settings feed the dashboard summary, so settings mutations must
	// invalidate generation-keyed caches too.
	budget := core.Money{Cents: 100}
	l.UpdateSettings(ctx, core.SettingsPatch{Budget: &budget})
	if l.Generation() == g1 {
		t.Fatal("generation must advance on a settings update")
	}

	g2 := l.Generation()
	if err := l.AddCategory(ctx, "Snacks"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if l.Generation() == g2 {
		t.Fatal("generation must advance on a category add")
	}

	g3 := l.Generation()
	l.RemoveCategory(ctx, "Snacks")
	if l.Generation() == g3 {
		t.Fatal("generation must advance on a category remove")
	}
}

func TestMergeImportAppendsOnlyNew(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)
	l.Add(ctx, "Lunch", core.Money{Cents: 1250}, "Food", "2025-01-01")

	file := importer.File{Name: "batch.json", Data: []byte(`[
		{"id":"x1","description":"Lunch","amount":12.5,"category":"Food","date":"2025-01-01"},
		{"id":"x2","description":"Bus","amount":3,"category":"Transport","date":"2025-01-02"}
	]`)}

	res := l.MergeImport(ctx, []importer.File{file})
	if res.NewCount != 1 || res.DuplicateCount != 1 {
		t.Fatalf("merge result: %+v", res)
	}
	if len(l.Transactions()) != 2 {
		t.Fatalf("log size = %d, want 2", len(l.Transactions()))
	}

	// Idempotence through the ledger as well.
	res = l.MergeImport(ctx, []importer.File{file})
	if res.NewCount != 0 {
		t.Fatalf("second merge must add nothing: %+v", res)
	}
}

func TestReplaceImportDiscardsLog(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)
	l.Add(ctx, "Old", core.Money{Cents: 100}, "Food", "2025-01-01")

	file := importer.File{Name: "batch.json", Data: []byte(`[
		{"id":"n1","description":"New","amount":1,"category":"Food","date":"2025-02-01"}
	]`)}
	res := l.ReplaceImport(ctx, []importer.File{file})
	if res.NewCount != 1 {
		t.Fatalf("replace result: %+v", res)
	}

	ts := l.Transactions()
	if len(ts) != 1 || ts[0].ID != "n1" {
		t.Fatalf("replace must discard the old log: %+v", ts)
	}
}

func TestSettingsAndCategories(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	budget := core.Money{Cents: 5000}
	got := l.UpdateSettings(ctx, core.SettingsPatch{Budget: &budget})
	if got.Budget != budget {
		t.Fatalf("budget not updated: %+v", got)
	}
	if got.Currency != core.DefaultSettings().Currency {
		t.Fatal("unpatched fields must survive")
	}

	if err := l.AddCategory(ctx, " Snacks "); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if !l.Settings().HasCategory("Snacks") {
		t.Fatal("category should be stored trimmed")
	}
	if err := l.AddCategory(ctx, "Snacks"); err != ErrCategoryExists {
		t.Fatalf("duplicate category: got %v, want ErrCategoryExists", err)
	}
	if err := l.AddCategory(ctx, "Caf3"); err == nil {
		t.Fatal("invalid category name must be rejected")
	}

	if !l.RemoveCategory(ctx, "Snacks") {
		t.Fatal("remove should find the category")
	}
	if l.RemoveCategory(ctx, "Snacks") {
		t.Fatal("second remove must report false")
	}
}
