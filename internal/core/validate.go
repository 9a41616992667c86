package core

import (
	"errors"
	"regexp"
	"strings"
)

// Field validators return nil when the value is acceptable, otherwise
// an error whose message is the user-facing text shown next to the
// field. They never panic; malformed input is always a plain error.
var (
	ErrDescriptionRequired  = errors.New("Description is required.")
	ErrDescriptionSpaces    = errors.New("Description must not have leading or trailing spaces.")
	ErrDescriptionDuplicate = errors.New(`Description contains a duplicate word (e.g. "the the").`)
	ErrAmountRequired       = errors.New("Amount is required.")
	ErrInvalidAmount        = errors.New("Amount must be a positive number with up to 2 decimal places (e.g. 12.50).")
	ErrDateRequired         = errors.New("Date is required.")
	ErrInvalidDate          = errors.New("Date must be in YYYY-MM-DD format (e.g. 2025-09-29).")
	ErrCategoryRequired     = errors.New("Category is required.")
	ErrInvalidCategory      = errors.New("Category must contain only letters, spaces, or hyphens.")
	ErrBudgetRequired       = errors.New("Budget is required.")
	ErrInvalidBudget        = errors.New("Budget must be a positive number.")
)

var (
	reDescription = regexp.MustCompile(`^\S(.*\S)?$`)

	// A single "0" is fine, further leading zeros are not ("007").
	reAmount = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]{1,2})?$`)

	// Month and day ranges only. 2025-02-30 passes: day-of-month is not
	// checked against the specific month or leap year.
	reDate = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

	reCategory = regexp.MustCompile(`^[A-Za-z]+([ -][A-Za-z]+)*$`)

	reWord = regexp.MustCompile(`\w+`)
)

// ValidateDescription rejects empty values, surrounding whitespace and
// immediately repeated words. The repeated-word rule is a content
// quality heuristic, nothing more.
func ValidateDescription(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrDescriptionRequired
	}
	if !reDescription.MatchString(value) {
		return ErrDescriptionSpaces
	}
	if hasRepeatedWord(value) {
		return ErrDescriptionDuplicate
	}
	return nil
}

// hasRepeatedWord reports whether two equal words (case-insensitive)
// appear separated by whitespace only. RE2 has no backreferences, so
// the pairwise comparison is done by hand over word tokens.
func hasRepeatedWord(value string) bool {
	idx := reWord.FindAllStringIndex(value, -1)
	for i := 1; i < len(idx); i++ {
		gap := value[idx[i-1][1]:idx[i][0]]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		prev := value[idx[i-1][0]:idx[i-1][1]]
		cur := value[idx[i][0]:idx[i][1]]
		if strings.EqualFold(prev, cur) {
			return true
		}
	}
	return false
}

// ValidateAmount checks the decimal grammar: non-negative, no redundant
// leading zeros, at most two fractional digits.
func ValidateAmount(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrAmountRequired
	}
	if !reAmount.MatchString(strings.TrimSpace(value)) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateDate checks the ISO calendar-date grammar with month 01-12
// and day 01-31.
func ValidateDate(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrDateRequired
	}
	if !reDate.MatchString(strings.TrimSpace(value)) {
		return ErrInvalidDate
	}
	return nil
}

// ValidateCategory allows letters, spaces and hyphens only.
func ValidateCategory(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrCategoryRequired
	}
	if !reCategory.MatchString(strings.TrimSpace(value)) {
		return ErrInvalidCategory
	}
	return nil
}

// ValidateBudget shares the amount grammar but reports budget-specific
// messages.
func ValidateBudget(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrBudgetRequired
	}
	if !reAmount.MatchString(strings.TrimSpace(value)) {
		return ErrInvalidBudget
	}
	return nil
}
