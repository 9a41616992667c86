package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type (
	Theme string

	// Transaction is a single recorded expense entry. Date is kept as an
	// ISO YYYY-MM-DD string: zero-padding makes lexicographic order equal
	// chronological order, which the query engine relies on.
	Transaction struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"`
		Date        string    `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}

	// RatePair is an auxiliary exchange rate used only for display
	// conversion; no correctness guarantee beyond the static multiplier.
	RatePair struct {
		Label string  `json:"label"`
		Rate  float64 `json:"rate"`
	}

	Settings struct {
		Budget     Money      `json:"budget"`
		Currency   string     `json:"currency"`
		Rates      []RatePair `json:"rates"`
		Categories []string   `json:"categories"`
		Theme      Theme      `json:"theme"`
	}

	// SettingsPatch carries a shallow-merge update: only non-nil fields
	// replace the current value. Categories are not patchable; they
	// change one at a time through AddCategory/RemoveCategory.
	SettingsPatch struct {
		Budget   *Money
		Currency *string
		Rates    []RatePair
		Theme    *Theme
	}
)

// NewTransaction builds a transaction with a fresh opaque ID and both
// timestamps set to now. The ID never changes afterwards.
func NewTransaction(description string, amount Money, category, date string, now time.Time) Transaction {
	return Transaction{
		ID:          "rec_" + uuid.NewString(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    category,
		Date:        strings.TrimSpace(date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Month returns the transaction's year-month key ("2025-01"), or ""
// when the date is too short to carry one.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// InPeriod reports whether the transaction's date falls in the given
// year-month key. An empty period matches everything.
func (t Transaction) InPeriod(period string) bool {
	if period == "" {
		return true
	}
	return strings.HasPrefix(t.Date, period+"-")
}

// DefaultSettings returns the settings installed when no saved settings
// exist or the saved record is unreadable.
func DefaultSettings() Settings {
	return Settings{
		Budget:   Money{Cents: 100000 * 100},
		Currency: "RWF",
		Rates:    []RatePair{{Label: "USD", Rate: 0.00073}},
		Categories: []string{
			"Food",
			"Books",
			"Transport",
			"Entertainment",
			"Repairs",
			"Utilities",
			"Rent/Dorm Fees",
			"Toiletries",
			"Hair & Skin Care",
			"Clothes & Shoes",
			"Gifts/Contributions",
			"Subscriptions",
			"Other",
		},
		Theme: ThemeDark,
	}
}

// Merge applies a shallow patch: provided fields replace, absent fields
// keep their current value. Slices are copied so the patch owner cannot
// alias internal state.
func (s Settings) Merge(p SettingsPatch) Settings {
	out := s
	if p.Budget != nil {
		out.Budget = *p.Budget
	}
	if p.Currency != nil {
		out.Currency = *p.Currency
	}
	if p.Rates != nil {
		out.Rates = append([]RatePair(nil), p.Rates...)
	}
	if p.Theme != nil {
		out.Theme = *p.Theme
	}
	return out
}

// Clone returns a settings copy with no shared slices.
func (s Settings) Clone() Settings {
	out := s
	out.Rates = append([]RatePair(nil), s.Rates...)
	out.Categories = append([]string(nil), s.Categories...)
	return out
}

// HasCategory reports whether name (after trimming) is already
// configured.
func (s Settings) HasCategory(name string) bool {
	name = strings.TrimSpace(name)
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}
