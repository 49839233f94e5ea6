package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidRate(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"0.042", true},
		{"1", true},
		{"1.0001", false},
		{"-0.01", false},
	}
	for _, c := range cases {
		got := IsValidRate(decimal.RequireFromString(c.input))
		if got != c.want {
			t.Errorf("IsValidRate(%s) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	valid := []string{"2026-01", "2024-12"}
	invalid := []string{"2026-13", "2026-1-1", "26-01", "january", ""}
	for _, p := range valid {
		if _, ok := IsValidPeriod(p); !ok {
			t.Errorf("IsValidPeriod(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if _, ok := IsValidPeriod(p); ok {
			t.Errorf("IsValidPeriod(%q) = true, want false", p)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "baseSalaire", Message: "must be non-negative"},
		{Field: "mois", Message: "must be between 1 and 12"},
	}
	m := errs.ToMap()
	if m["baseSalaire"] != "must be non-negative" || m["mois"] != "must be between 1 and 12" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() == "" {
		t.Error("Error() should join field messages")
	}
}
