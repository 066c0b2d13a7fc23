package ledger

import (
	"sort"

	"pembukuan/internal/core"
)

// Summarize aggregates an already-filtered entry set into per-date
// rollups sorted ascending, plus grand totals. Grouping is by exact
// calendar date; each entry lands in exactly one bucket.
func Summarize(month string, entries []core.LedgerEntry) core.MonthlySummary {
	byDate := make(map[string]core.DailyRollup)
	for _, e := range entries {
		key := e.Date.ISO()
		day, ok := byDate[key]
		if !ok {
			day = core.DailyRollup{Date: e.Date}
		}
		switch e.Type {
		case core.EntryExpense:
			day.Outflow += e.Amount
		default:
			day.Inflow += e.Amount
		}
		day.Net = day.Inflow - day.Outflow
		byDate[key] = day
	}

	days := make([]core.DailyRollup, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date.Time)
	})

	summary := core.MonthlySummary{Month: month, Days: days}
	for _, day := range days {
		summary.TotalInflow += day.Inflow
		summary.TotalOutflow += day.Outflow
	}
	summary.Net = summary.TotalInflow - summary.TotalOutflow
	return summary
}
