package ledger

import (
	"sort"

	"pembukuan/internal/core"
)

// BuildView produces the cashbook view: the filtered entries sorted
// newest first, each annotated with the running balance after it, plus a
// terminal synthetic opening row when the opening balance is non-zero.
//
// The running-balance walk starts from the final balance and unwinds
// toward the oldest entry, so the accumulator left after the last
// (oldest) entry equals the opening balance exactly.
func BuildView(entries []core.LedgerEntry, opening int64, f Filter) core.LedgerView {
	filtered := Apply(entries, f)

	final := opening
	for _, e := range filtered {
		final += e.Signed()
	}

	// Stable: same-date entries keep encounter order.
	ordered := make([]core.LedgerEntry, len(filtered))
	copy(ordered, filtered)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date.Time)
	})

	rows := make([]core.LedgerRow, 0, len(ordered)+1)
	running := final
	for _, e := range ordered {
		rows = append(rows, core.LedgerRow{
			Kind:           core.RowEntry,
			ID:             e.ID,
			Date:           e.Date,
			Type:           e.Type,
			Account:        e.Account,
			Amount:         e.Amount,
			ReferenceID:    e.ReferenceID,
			Description:    e.Description,
			RunningBalance: running,
			AmountDisplay:  core.FormatRupiah(e.Amount),
		})
		running -= e.Signed()
	}

	if opening != 0 {
		rows = append(rows, core.LedgerRow{
			Kind:           core.RowOpening,
			Description:    core.OpeningRowLabel,
			RunningBalance: opening,
			AmountDisplay:  core.FormatRupiah(opening),
		})
	}

	return core.LedgerView{
		Rows:         rows,
		Opening:      opening,
		FinalBalance: final,
	}
}
