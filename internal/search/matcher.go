// Package search compiles user search patterns and applies them to
// transactions for filtering and match highlighting.
package search

import (
	"regexp"
	"strings"

	"campuscoins/internal/core"
)

// Matcher holds a compiled search pattern. The zero value (and any
// matcher built from a blank or malformed pattern) matches everything,
// so a broken pattern degrades to "no filter" instead of breaking the
// live view. Matching is stateless: regexp re-scans from the start on
// every call, no cursor survives between tests.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds a matcher from a user-supplied pattern. Blank input
// and compile failures both yield the match-everything matcher;
// IsValidPattern exists separately so callers can still surface a
// validation message.
func Compile(pattern string, caseSensitive bool) *Matcher {
	if strings.TrimSpace(pattern) == "" {
		return &Matcher{}
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &Matcher{}
	}
	return &Matcher{re: re}
}

// IsValidPattern reports whether the pattern would compile. Blank input
// is valid (it means "no filter").
func IsValidPattern(pattern string) bool {
	if strings.TrimSpace(pattern) == "" {
		return true
	}
	_, err := regexp.Compile(pattern)
	return err == nil
}

// Active reports whether a real pattern is in effect.
func (m *Matcher) Active() bool {
	return m != nil && m.re != nil
}

// Matches tests the pattern against the transaction's fields in order
// description, category, amount, date, short-circuiting on the first
// hit. Without an active pattern every transaction matches.
func (m *Matcher) Matches(t core.Transaction) bool {
	if !m.Active() {
		return true
	}
	if m.re.MatchString(t.Description) {
		return true
	}
	if m.re.MatchString(t.Category) {
		return true
	}
	if m.re.MatchString(t.Amount.String()) {
		return true
	}
	return m.re.MatchString(t.Date)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Highlight returns text HTML-escaped with every non-overlapping match
// wrapped in <mark>. The pattern runs against the escaped text, so
// spans never split an entity. Without an active pattern the escaped
// text comes back unchanged.
func (m *Matcher) Highlight(text string) string {
	escaped := htmlEscaper.Replace(text)
	if !m.Active() {
		return escaped
	}
	return m.re.ReplaceAllStringFunc(escaped, func(match string) string {
		return "<mark>" + match + "</mark>"
	})
}
