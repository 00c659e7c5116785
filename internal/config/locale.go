package config

import (
	"os"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// LocaleInfo holds the locale and currency detected from the environment.
type LocaleInfo struct {
	Locale   string
	Currency string
}

// DetectLocale reads the POSIX locale variables to suggest display
// settings. It falls back to en-US/USD when nothing usable is set.
func DetectLocale() LocaleInfo {
	fallback := LocaleInfo{Locale: "en-US", Currency: "USD"}

	var raw string
	for _, key := range []string{"LC_ALL", "LC_MONETARY", "LANG"} {
		if v := os.Getenv(key); v != "" {
			raw = v
			break
		}
	}
	// "en_GB.UTF-8@euro" -> "en-GB"
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")
	if raw == "" || raw == "C" || raw == "POSIX" {
		return fallback
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return fallback
	}
	info := LocaleInfo{Locale: tag.String(), Currency: fallback.Currency}

	region, conf := tag.Region()
	if conf == language.No {
		return info
	}
	if unit, ok := currency.FromRegion(region); ok {
		info.Currency = unit.String()
	}
	return info
}
