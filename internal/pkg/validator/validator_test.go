package validator

import (
	"testing"
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

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-15", "2024-02-29", "1999-12-31"}
	invalid := []string{"2024-13-01", "2023-02-29", "15-01-2024", "2024/01/15", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "16:30", "23:59"}
	invalid := []string{"24:00", "8:00", "12:60", "noon", ""}
	for _, c := range valid {
		if !IsValidClock(c) {
			t.Errorf("IsValidClock(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if IsValidClock(c) {
			t.Errorf("IsValidClock(%q) = true, want false", c)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"andresb", "tokiom1", "monica.r", "cam_1-a"}
	invalid := []string{"ab", "Andres", "with space", "", "x@y"}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = true, want false", u)
		}
	}
}

func TestIsValidProductCode(t *testing.T) {
	if !IsValidProductCode("SS-001") {
		t.Error("IsValidProductCode(\"SS-001\") = false, want true")
	}
	if IsValidProductCode("ss 001") {
		t.Error("IsValidProductCode(\"ss 001\") = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "is required"},
		{Field: "amount", Message: "must be non-negative"},
	}
	if got, want := errs.Error(), "date: is required; amount: must be non-negative"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	m := errs.ToMap()
	if m["amount"] != "must be non-negative" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
