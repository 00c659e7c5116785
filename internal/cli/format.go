// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders amounts in one currency for one locale.
// It satisfies chart.CurrencyFormatter.
type CurrencyFormatter struct {
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
	symbol  string
	scale   int
}

// NewCurrencyFormatter builds a formatter for an ISO 4217 code and a BCP 47
// locale, e.g. ("EUR", "de-DE").
func NewCurrencyFormatter(code, locale string) (*CurrencyFormatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}

	p := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)
	return &CurrencyFormatter{
		unit:    unit,
		tag:     tag,
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
		scale:   scale,
	}, nil
}

// MustCurrencyFormatter is NewCurrencyFormatter that falls back to USD/en-US
// when the inputs don't parse.
func MustCurrencyFormatter(code, locale string) *CurrencyFormatter {
	f, err := NewCurrencyFormatter(code, locale)
	if err != nil {
		f, _ = NewCurrencyFormatter("USD", "en-US")
	}
	return f
}

// Code returns the ISO currency code.
func (f *CurrencyFormatter) Code() string { return f.unit.String() }

// Symbol returns the locale's symbol for the currency, e.g. "$" or "€".
func (f *CurrencyFormatter) Symbol() string { return f.symbol }

// FormatCurrency formats an amount with the currency's standard number of
// decimals, e.g. 1234.5 -> "$1,234.50".
func (f *CurrencyFormatter) FormatCurrency(amount float64) string {
	return f.format(amount, f.scale)
}

// FormatCompact drops the decimals for large amounts. Used where columns
// are narrow, e.g. chart axis labels.
func (f *CurrencyFormatter) FormatCompact(amount float64) string {
	if math.Abs(amount) >= 1000 {
		return f.format(math.Round(amount), 0)
	}
	return f.FormatCurrency(amount)
}

// FormatDelta formats current-previous with an explicit sign.
func (f *CurrencyFormatter) FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + f.FormatCurrency(delta)
	}
	return f.FormatCurrency(delta)
}

func (f *CurrencyFormatter) format(amount float64, scale int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + f.symbol + f.printer.Sprint(number.Decimal(amount, number.Scale(scale)))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 share, e.g. 42.25 -> "42.3%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatPercentDelta formats a relative change between two totals.
// Returns "n/a" when there is no previous value to compare against.
func FormatPercentDelta(current, previous float64) string {
	if previous == 0 {
		return "n/a"
	}
	pct := (current - previous) / previous * 100
	if pct >= 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMonth formats the month containing t, e.g. "June 2026".
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}

// FormatDate formats a transaction date as "Jun 02".
func FormatDate(t time.Time) string {
	return t.Format("Jan 02")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// ParseMonth parses "2006-01" into the first day of that month in loc.
// An empty string means the month containing now.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("month %q: want YYYY-MM", s)
	}
	return t, nil
}
