// Package core holds the bookkeeping domain types shared by the ledger
// engine, the stores, and the HTTP surface.
//
// Amounts are whole rupiah held in int64; the currency has no subunits in
// practice, so all arithmetic stays in integer space.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user- or store-supplied amount string to whole
// rupiah. It tolerates "Rp" prefixes, thousand separators and surrounding
// whitespace ("Rp 50.000", "50,000", "50000"). A missing or unparsable
// value coerces to 0 rather than failing: a bad amount must never abort a
// ledger rebuild.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	neg := strings.HasPrefix(s, "-")

	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		// Overflow of a hand-typed amount; treat like any other garbage.
		return 0
	}
	if neg {
		return -v
	}
	return v
}

// FormatRupiah renders whole rupiah with dot thousand separators,
// e.g. 1500000 -> "Rp1.500.000", -500 -> "-Rp500".
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}
