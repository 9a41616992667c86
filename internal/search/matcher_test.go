package search

import (
	"testing"

	"campuscoins/internal/core"
)

func tx(desc string, cents int64, category, date string) core.Transaction {
	return core.Transaction{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        date,
	}
}

func TestCompileBlankAndInvalid(t *testing.T) {
	for _, pattern := range []string{"", "   ", "[unclosed", "(?P<bad"} {
		m := Compile(pattern, false)
		if m.Active() {
			t.Errorf("Compile(%q) should degrade to match-everything", pattern)
		}
		if !m.Matches(tx("anything", 100, "Food", "2025-01-01")) {
			t.Errorf("Compile(%q) must match everything", pattern)
		}
	}
}

func TestIsValidPattern(t *testing.T) {
	if !IsValidPattern("") || !IsValidPattern("foo.*bar") {
		t.Fatal("expected valid")
	}
	if IsValidPattern("[unclosed") {
		t.Fatal("expected invalid")
	}
}

func TestMatchesCaseSensitivity(t *testing.T) {
	rec := tx("Foo Bar", 100, "Food", "2025-01-01")

	if !Compile("foo", false).Matches(rec) {
		t.Fatal("case-insensitive foo should match Foo Bar")
	}
	if Compile("foo", true).Matches(rec) {
		t.Fatal("case-sensitive foo should not match Foo Bar")
	}
	if !Compile("Foo", true).Matches(rec) {
		t.Fatal("case-sensitive Foo should match Foo Bar")
	}
}

func TestMatchesAnyField(t *testing.T) {
	rec := tx("Lunch", 1250, "Food", "2025-03-15")

	cases := []struct {
		pattern string
		want    bool
	}{
		{"Lunch", true},
		{"Food", true},
		{"12.5", true},       // amount in minimal decimal form
		{"2025-03", true},    // date
		{"^Food$", true},     // anchored category
		{"Dinner", false},
		{"99", false},
	}
	for _, tc := range cases {
		if got := Compile(tc.pattern, true).Matches(rec); got != tc.want {
			t.Errorf("pattern %q: got %v, want %v", tc.pattern, got, tc.want)
		}
	}
}

func TestMatchesStateless(t *testing.T) {
	// The same compiled matcher must give identical answers across
	// repeated independent calls.
	m := Compile("Lunch", true)
	rec := tx("Lunch", 100, "Food", "2025-01-01")
	for i := 0; i < 5; i++ {
		if !m.Matches(rec) {
			t.Fatalf("call %d: match lost between invocations", i)
		}
	}
}

func TestHighlight(t *testing.T) {
	cases := []struct {
		pattern string
		caseSen bool
		text    string
		want    string
	}{
		{"foo", false, "Foo Bar", "<mark>Foo</mark> Bar"},
		{"o", true, "Foo", "F<mark>o</mark><mark>o</mark>"},
		{"", false, `a < b & c`, "a &lt; b &amp; c"},
		{"b", true, `a "b"`, `a &quot;<mark>b</mark>&quot;`},
	}
	for _, tc := range cases {
		got := Compile(tc.pattern, tc.caseSen).Highlight(tc.text)
		if got != tc.want {
			t.Errorf("Highlight(%q, %q) = %q, want %q", tc.pattern, tc.text, got, tc.want)
		}
	}
}

func TestHighlightEscapesBeforeMatching(t *testing.T) {
	// The pattern sees the escaped text, so matching "amp" in "&" works
	// while raw "<" never appears in the output.
	m := Compile("<", true)
	if got := m.Highlight("a<b"); got != "a&lt;b" {
		t.Fatalf("got %q, want %q", got, "a&lt;b")
	}
}
