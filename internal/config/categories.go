package config

import (
	"hash/fnv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryDefaults holds the color and suggested monthly budget of a
// well-known category.
type CategoryDefaults struct {
	Color         string
	MonthlyBudget float64
}

// DefaultCategories maps canonical category names to their defaults.
// Colors follow the Flexoki accent palette so they read on both themes.
var DefaultCategories = map[string]CategoryDefaults{
	"Groceries":     {Color: "#4385BE", MonthlyBudget: 600},
	"Rent":          {Color: "#878580", MonthlyBudget: 1400},
	"Transport":     {Color: "#879A39", MonthlyBudget: 200},
	"Dining":        {Color: "#DA702C", MonthlyBudget: 250},
	"Utilities":     {Color: "#3AA99F", MonthlyBudget: 180},
	"Entertainment": {Color: "#8B7EC8", MonthlyBudget: 120},
	"Health":        {Color: "#D14D41", MonthlyBudget: 100},
	"Shopping":      {Color: "#D0A215", MonthlyBudget: 150},
}

// categoryOrder is the display order of DefaultCategories.
var categoryOrder = []string{
	"Rent", "Groceries", "Transport", "Dining",
	"Utilities", "Entertainment", "Health", "Shopping",
}

// categoryAliases folds common spellings onto canonical names.
var categoryAliases = map[string]string{
	"grocery":     "Groceries",
	"food":        "Groceries",
	"housing":     "Rent",
	"mortgage":    "Rent",
	"transit":     "Transport",
	"travel":      "Transport",
	"fuel":        "Transport",
	"gas":         "Transport",
	"restaurants": "Dining",
	"eating out":  "Dining",
	"bills":       "Utilities",
	"fun":         "Entertainment",
	"medical":     "Health",
}

// fallbackPalette colors categories that have no defaults.
var fallbackPalette = []string{
	"#4385BE", "#879A39", "#DA702C", "#3AA99F",
	"#8B7EC8", "#D14D41", "#D0A215", "#CE5D97",
}

// NormalizeCategoryName canonicalizes a category label from user input or an
// import file: whitespace is collapsed, known aliases are folded, and
// everything else is title-cased.
//
//	"  grocery " -> "Groceries"
//	"pet   care" -> "Pet Care"
func NormalizeCategoryName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return "Uncategorized"
	}
	lower := strings.ToLower(name)
	if canon, ok := categoryAliases[lower]; ok {
		return canon
	}
	for canon := range DefaultCategories {
		if strings.ToLower(canon) == lower {
			return canon
		}
	}
	// Casers carry state, so each call gets its own.
	return cases.Title(language.Und).String(lower)
}

// LookupCategory returns the defaults for a canonical category name.
func LookupCategory(name string) (CategoryDefaults, bool) {
	d, ok := DefaultCategories[NormalizeCategoryName(name)]
	return d, ok
}

// ColorFor returns the default color of a category, or a stable palette
// color derived from its name.
func ColorFor(name string) string {
	if d, ok := LookupCategory(name); ok {
		return d.Color
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(NormalizeCategoryName(name)))
	return fallbackPalette[h.Sum32()%uint32(len(fallbackPalette))]
}

// CategoryNames returns the canonical names of DefaultCategories in display
// order.
func CategoryNames() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}
