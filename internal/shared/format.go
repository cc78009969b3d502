package shared

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown for absent values.
const Placeholder = "-"

var idPrinter = message.NewPrinter(language.Indonesian)

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatRupiah renders an amount as "Rp 1.500.000" using Indonesian grouping.
func FormatRupiah(amount float64) string {
	return "Rp " + idPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatRupiahPtr renders the placeholder when valid is false.
func FormatRupiahPtr(amount float64, valid bool) string {
	if !valid {
		return Placeholder
	}
	return FormatRupiah(amount)
}

// FormatNumber renders an integer with Indonesian grouping.
func FormatNumber(n int64) string {
	return idPrinter.Sprint(number.Decimal(n))
}

// FormatDate renders a short date like "02 Jan 2006"; zero renders the placeholder.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("02 Jan 2006")
}

// FormatDateLong renders "2 Januari 2006"; zero renders the placeholder.
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()-1], t.Year())
}

// FormatInputDate renders the value of an HTML date input.
func FormatInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// OrPlaceholder returns s, or the placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
