package config

import "testing"

func TestNormalizeCategoryName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Groceries", "Groceries"},
		{"  grocery ", "Groceries"},
		{"RENT", "Rent"},
		{"eating   out", "Dining"},
		{"pet   care", "Pet Care"},
		{"", "Uncategorized"},
	}
	for _, tt := range tests {
		if got := NormalizeCategoryName(tt.in); got != tt.want {
			t.Errorf("NormalizeCategoryName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorFor(t *testing.T) {
	if got := ColorFor("groceries"); got != "#4385BE" {
		t.Errorf("ColorFor(groceries) = %q, want default color", got)
	}
	a, b := ColorFor("Pet Care"), ColorFor("pet care")
	if a != b {
		t.Errorf("fallback color not stable across spellings: %q vs %q", a, b)
	}
	if len(a) != 7 || a[0] != '#' {
		t.Errorf("fallback color %q is not a hex token", a)
	}
}

func TestCategoryNames_MatchesDefaults(t *testing.T) {
	names := CategoryNames()
	if len(names) != len(DefaultCategories) {
		t.Fatalf("CategoryNames has %d entries, DefaultCategories %d", len(names), len(DefaultCategories))
	}
	for _, n := range names {
		if _, ok := DefaultCategories[n]; !ok {
			t.Errorf("%q has no defaults", n)
		}
	}
}

func TestDetectLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MONETARY", "")

	t.Setenv("LANG", "en_GB.UTF-8")
	if got := DetectLocale(); got.Locale != "en-GB" || got.Currency != "GBP" {
		t.Errorf("en_GB: got %+v", got)
	}

	t.Setenv("LANG", "C")
	if got := DetectLocale(); got.Locale != "en-US" || got.Currency != "USD" {
		t.Errorf("C locale: got %+v", got)
	}

	t.Setenv("LC_MONETARY", "de_DE@euro")
	if got := DetectLocale(); got.Currency != "EUR" {
		t.Errorf("de_DE: got %+v", got)
	}
}
