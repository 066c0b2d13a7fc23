package ledger

import "pembukuan/internal/core"

// Filter narrows an entry set to a month and/or account. The zero Filter
// is the identity. Both conditions compose by logical AND.
type Filter struct {
	Month   string       // "YYYY-MM", empty matches every month
	Account core.Account // empty matches every account
}

func (f Filter) isZero() bool {
	return f.Month == "" && f.Account == ""
}

// Apply returns the entries matching the filter. With no filter set the
// input slice is returned unchanged.
func Apply(entries []core.LedgerEntry, f Filter) []core.LedgerEntry {
	if f.isZero() {
		return entries
	}
	out := make([]core.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if f.Month != "" && e.Date.YearMonth() != f.Month {
			continue
		}
		if f.Account != "" && e.Account != f.Account {
			continue
		}
		out = append(out, e)
	}
	return out
}
