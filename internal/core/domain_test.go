package core

import (
	"testing"
	"time"
)

func TestNewTransaction(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := NewTransaction("  Lunch  ", Money{Cents: 1250}, "Food", " 2025-03-01 ", now)
	b := NewTransaction("Lunch", Money{Cents: 1250}, "Food", "2025-03-01", now)

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.Description != "Lunch" || a.Date != "2025-03-01" {
		t.Fatalf("expected trimmed fields, got %q %q", a.Description, a.Date)
	}
	if !a.CreatedAt.Equal(now) || !a.UpdatedAt.Equal(now) {
		t.Fatal("expected both timestamps set to now")
	}
}

func TestTransactionInPeriod(t *testing.T) {
	tr := Transaction{Date: "2025-01-15"}
	if !tr.InPeriod("2025-01") {
		t.Fatal("expected 2025-01-15 in period 2025-01")
	}
	if tr.InPeriod("2025-02") {
		t.Fatal("expected 2025-01-15 not in period 2025-02")
	}
	if !tr.InPeriod("") {
		t.Fatal("empty period must match everything")
	}
	if tr.Month() != "2025-01" {
		t.Fatalf("Month() = %q, want 2025-01", tr.Month())
	}
}

func TestSettingsMerge(t *testing.T) {
	s := DefaultSettings()

	budget := Money{Cents: 5000}
	theme := ThemeLight
	out := s.Merge(SettingsPatch{Budget: &budget, Theme: &theme})

	if out.Budget != budget || out.Theme != ThemeLight {
		t.Fatalf("patched fields not applied: %+v", out)
	}
	if out.Currency != s.Currency || len(out.Categories) != len(s.Categories) {
		t.Fatal("unpatched fields must keep their value")
	}

	// A patch with only rates must not touch the rest.
	out2 := s.Merge(SettingsPatch{Rates: []RatePair{{Label: "EUR", Rate: 0.0008}}})
	if len(out2.Rates) != 1 || out2.Rates[0].Label != "EUR" || out2.Budget != s.Budget {
		t.Fatalf("unexpected merge result: %+v", out2)
	}
}

func TestSettingsHasCategory(t *testing.T) {
	s := Settings{Categories: []string{"Food", "Books"}}
	if !s.HasCategory("Food") || !s.HasCategory("  Food  ") {
		t.Fatal("expected Food to be present (trim-insensitive)")
	}
	if s.HasCategory("food") {
		t.Fatal("category names are case-sensitive")
	}
}
