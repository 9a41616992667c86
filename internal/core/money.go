// Package core provides the expense tracker domain model: transactions,
// settings, money handling and field validation.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between the cents and decimal representations.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents. Calculations stay in cents to avoid
// floating-point drift; the decimal form exists only at the JSON and
// display boundaries.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money. The accepted grammar
// matches ValidateAmount: a non-negative integer without redundant
// leading zeros, optionally followed by 1-2 fractional digits.
//
// Examples:
//
//	ParseAmount("12.50") -> 1250 cents, nil
//	ParseAmount("0.5")   -> 50 cents, nil
//	ParseAmount("007")   -> error (leading zeros)
//	ParseAmount("12.345")-> error (too many fractional digits)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if err := ValidateAmount(s); err != nil {
		return Money{}, err
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Prevent overflow when scaling to cents.
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
		}
	}
	return Money{Cents: iv*100 + frac}, nil
}

// FromFloat converts a decimal value (e.g. a JSON number) to Money with
// half-up rounding on fractions of a cent.
func FromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Float returns the decimal value as a float64 for display and JSON
// purposes only.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the minimal decimal form: "100", "12.5", "0.25".
// This is also the form the search matcher tests patterns against.
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100
	var s string
	switch {
	case rem == 0:
		s = strconv.FormatInt(whole, 10)
	case rem%10 == 0:
		s = fmt.Sprintf("%d.%d", whole, rem/10)
	default:
		s = fmt.Sprintf("%d.%02d", whole, rem)
	}
	if neg {
		return "-" + s
	}
	return s
}

// Format renders the amount with exactly two fractional digits, the
// form used in labels ("Spent: 150.00").
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON emits a bare JSON number in minimal decimal notation so
// exports stay interchangeable with hand-written JSON.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts any JSON number; non-numeric input is an error.
func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return ErrInvalidAmount
	}
	*m = FromFloat(v)
	return nil
}
