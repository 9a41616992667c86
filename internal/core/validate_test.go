package core

import "testing"

func TestValidateDescription(t *testing.T) {
	cases := []struct {
		in  string
		err error
	}{
		{"Lunch at cafeteria", nil},
		{"a", nil},
		{"the theory of tea", nil}, // "the theory" is not a repeat
		{"", ErrDescriptionRequired},
		{"   ", ErrDescriptionRequired},
		{" leading space", ErrDescriptionSpaces},
		{"trailing space ", ErrDescriptionSpaces},
		{"the the market", ErrDescriptionDuplicate},
		{"The the market", ErrDescriptionDuplicate}, // case-insensitive
		{"bus  bus fare", ErrDescriptionDuplicate},  // multiple spaces between
	}
	for _, tc := range cases {
		if got := ValidateDescription(tc.in); got != tc.err {
			t.Errorf("ValidateDescription(%q) = %v, want %v", tc.in, got, tc.err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	valid := []string{"0", "0.5", "0.50", "1", "12", "12.5", "12.50", "100", "9999.99", " 2.50 "}
	for _, in := range valid {
		if err := ValidateAmount(in); err != nil {
			t.Errorf("ValidateAmount(%q) = %v, want nil", in, err)
		}
	}

	invalid := []string{"", "   ", "007", "01", "12.345", "-1", "+1", "1.", ".5", "abc", "1,50", "1.2.3"}
	for _, in := range invalid {
		if err := ValidateAmount(in); err == nil {
			t.Errorf("ValidateAmount(%q) = nil, want error", in)
		}
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2025-01-01", "2025-12-31", "1999-06-15", "2025-02-30"} // Feb 30 passes the syntactic check
	for _, in := range valid {
		if err := ValidateDate(in); err != nil {
			t.Errorf("ValidateDate(%q) = %v, want nil", in, err)
		}
	}

	invalid := []string{"", "2025-13-01", "2025-00-10", "2025-01-32", "2025-01-00", "25-01-01", "2025/01/01", "2025-1-1", "not-a-date"}
	for _, in := range invalid {
		if err := ValidateDate(in); err == nil {
			t.Errorf("ValidateDate(%q) = nil, want error", in)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	valid := []string{"Food", "Hair Care", "Rent-Dorm", "a b-c"}
	for _, in := range valid {
		if err := ValidateCategory(in); err != nil {
			t.Errorf("ValidateCategory(%q) = %v, want nil", in, err)
		}
	}

	invalid := []string{"", "Food!", "Caf3", "Food & Drink", "-Food", "Food-", "a  b"}
	for _, in := range invalid {
		if err := ValidateCategory(in); err == nil {
			t.Errorf("ValidateCategory(%q) = nil, want error", in)
		}
	}
}

func TestValidateBudget(t *testing.T) {
	if err := ValidateBudget("100000"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := ValidateBudget(""); err != ErrBudgetRequired {
		t.Fatalf("expected ErrBudgetRequired, got %v", err)
	}
	if err := ValidateBudget("1.234"); err != ErrInvalidBudget {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}
