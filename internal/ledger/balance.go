package ledger

import "pembukuan/internal/core"

// AccountBalances computes the all-time snapshot for every account over
// the full, unfiltered entry set: balance = opening + inflow - outflow.
// Dashboard tiles must always reflect all-time state, so no period filter
// is ever applied here. A negative balance is a valid state surfaced via
// IsOverdrawn, not an error.
func AccountBalances(entries []core.LedgerEntry, openings map[core.Account]int64) map[core.Account]core.AccountBalanceSnapshot {
	out := make(map[core.Account]core.AccountBalanceSnapshot, 3)
	for _, account := range core.Accounts() {
		out[account] = core.AccountBalanceSnapshot{
			Account: account,
			Opening: openings[account],
			Balance: openings[account],
		}
	}

	for _, e := range entries {
		snap := out[e.Account]
		switch e.Type {
		case core.EntryExpense:
			snap.Outflow += e.Amount
		default:
			snap.Inflow += e.Amount
		}
		snap.Balance = snap.Opening + snap.Inflow - snap.Outflow
		out[e.Account] = snap
	}

	for account, snap := range out {
		snap.IsOverdrawn = snap.Balance < 0
		out[account] = snap
	}
	return out
}
