// Package query produces the ordered, filtered transaction list view:
// period filter first, then text match, then compound sort.
package query

import (
	"sort"
	"strings"

	"campuscoins/internal/core"
	"campuscoins/internal/search"
)

const (
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"

	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type (
	Field     string
	Direction string

	// Sort is a compound sort key: field plus direction.
	Sort struct {
		Field Field
		Dir   Direction
	}
)

// DefaultSort is applied when no sort is specified: newest first.
func DefaultSort() Sort {
	return Sort{Field: FieldDate, Dir: Desc}
}

// ParseSort reads a "field-direction" selector such as "amount-asc".
// Anything unrecognized falls back to the default.
func ParseSort(s string) Sort {
	field, dir, ok := strings.Cut(s, "-")
	if !ok {
		return DefaultSort()
	}
	out := Sort{Field: Field(field), Dir: Direction(dir)}
	switch out.Field {
	case FieldDate, FieldAmount, FieldDescription:
	default:
		return DefaultSort()
	}
	switch out.Dir {
	case Asc, Desc:
	default:
		return DefaultSort()
	}
	return out
}

// View filters the log by period and matcher, then sorts the survivors.
// The input slice is never mutated; the result is a fresh slice.
// Amounts compare numerically, dates lexicographically (zero-padded ISO
// dates make that chronological) and descriptions case-insensitively.
func View(log []core.Transaction, period string, m *search.Matcher, s Sort) []core.Transaction {
	out := make([]core.Transaction, 0, len(log))
	for _, t := range log {
		if !t.InPeriod(period) {
			continue
		}
		if !m.Matches(t) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		less := compare(out[i], out[j], s.Field)
		if less == 0 {
			return false
		}
		if s.Dir == Asc {
			return less < 0
		}
		return less > 0
	})

	return out
}

func compare(a, b core.Transaction, field Field) int {
	switch field {
	case FieldAmount:
		switch {
		case a.Amount.Cents < b.Amount.Cents:
			return -1
		case a.Amount.Cents > b.Amount.Cents:
			return 1
		}
		return 0
	case FieldDescription:
		return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	default:
		return strings.Compare(a.Date, b.Date)
	}
}
