package ledger

import (
	"testing"

	"pembukuan/internal/core"
)

func TestAccountBalances_ScenarioA(t *testing.T) {
	entries := Normalize(Snapshot{
		Receipts: []core.PaymentReceipt{
			{ID: "r1", TransactionID: "t1", Date: core.NewDate(2024, 1, 5), AmountPaid: 50000, PaymentMethod: "tunai"},
		},
		Expenses: []core.Expense{
			{ID: "e1", Date: core.NewDate(2024, 1, 6), Amount: 20000, Category: "bensin"},
		},
	})
	balances := AccountBalances(entries, map[core.Account]int64{core.AccountCash: 100000})

	cash := balances[core.AccountCash]
	if cash.Inflow != 50000 {
		t.Errorf("cash inflow = %d, want 50000", cash.Inflow)
	}
	if cash.Outflow != 20000 {
		t.Errorf("cash outflow = %d, want 20000", cash.Outflow)
	}
	if cash.Balance != 130000 {
		t.Errorf("cash balance = %d, want 130000", cash.Balance)
	}
	if cash.IsOverdrawn {
		t.Error("cash should not be overdrawn")
	}
}

// balance == opening + inflow - outflow must hold for every account over
// the all-time set.
func TestAccountBalances_Identity(t *testing.T) {
	entries := Normalize(testSnapshot())
	openings := map[core.Account]int64{
		core.AccountCash:    100000,
		core.AccountBank:    -5000,
		core.AccountEWallet: 0,
	}
	balances := AccountBalances(entries, openings)

	if len(balances) != 3 {
		t.Fatalf("got %d accounts, want 3", len(balances))
	}
	for account, snap := range balances {
		if snap.Balance != snap.Opening+snap.Inflow-snap.Outflow {
			t.Errorf("%s: balance %d != opening %d + inflow %d - outflow %d",
				account, snap.Balance, snap.Opening, snap.Inflow, snap.Outflow)
		}
		if snap.Account != account {
			t.Errorf("snapshot account field %q under key %q", snap.Account, account)
		}
	}

	// Total coverage: every normalized entry was counted exactly once.
	var counted int64
	for _, snap := range balances {
		counted += snap.Inflow + snap.Outflow
	}
	var total int64
	for _, e := range entries {
		total += e.Amount
	}
	if counted != total {
		t.Errorf("partition by account covered %d of %d", counted, total)
	}
}

func TestAccountBalances_Boundary(t *testing.T) {
	balances := AccountBalances(nil, map[core.Account]int64{})
	for _, account := range core.Accounts() {
		snap := balances[account]
		if snap.Opening != 0 || snap.Inflow != 0 || snap.Outflow != 0 || snap.Balance != 0 {
			t.Errorf("%s: want all-zero snapshot, got %+v", account, snap)
		}
		if snap.IsOverdrawn {
			t.Errorf("%s: zero balance flagged overdrawn", account)
		}
	}
}

func TestAccountBalances_OverdrawFlag(t *testing.T) {
	entries := []core.LedgerEntry{
		{ID: "expense:e1", Date: core.NewDate(2024, 1, 2), Type: core.EntryExpense, Account: core.AccountCash, Amount: 500},
	}
	balances := AccountBalances(entries, map[core.Account]int64{})

	cash := balances[core.AccountCash]
	if cash.Balance != -500 {
		t.Errorf("balance = %d, want -500", cash.Balance)
	}
	if !cash.IsOverdrawn {
		t.Error("balance -500 must set IsOverdrawn")
	}
}
