package ledger

import (
	"testing"

	"pembukuan/internal/core"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Receipts: []core.PaymentReceipt{
			{ID: "r1", TransactionID: "t1", Date: core.NewDate(2024, 1, 5), AmountPaid: 50000, PaymentMethod: "tunai"},
			{ID: "r2", TransactionID: "missing", Date: core.NewDate(2024, 1, 7), AmountPaid: 75000, PaymentMethod: "Transfer BCA"},
		},
		Expenses: []core.Expense{
			{ID: "e1", Date: core.NewDate(2024, 1, 6), Amount: 20000, Category: "bensin"},
			{ID: "e2", Date: core.NewDate(2024, 1, 8), Amount: 15000, Category: "servis", Note: "ganti oli", FundingSource: "GoPay"},
		},
		Transactions: []core.RentalTransaction{
			{ID: "t1", TenantID: "p1", VehicleID: "v1", StartDate: core.NewDate(2024, 1, 1), EndDate: core.NewDate(2024, 1, 10), TotalAmount: 150000},
		},
		Tenants:  []core.Tenant{{ID: "p1", Name: "Budi"}},
		Vehicles: []core.Vehicle{{ID: "v1", Name: "Vario 125", Plate: "B 1234 XYZ"}},
		Openings: map[core.Account]int64{},
	}
}

func TestNormalize(t *testing.T) {
	entries := Normalize(testSnapshot())
	if len(entries) != 4 {
		t.Fatalf("Normalize produced %d entries, want 4", len(entries))
	}

	byID := make(map[string]core.LedgerEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	r1 := byID["receipt:r1"]
	if r1.Type != core.EntryIncome || r1.Account != core.AccountCash || r1.Amount != 50000 {
		t.Errorf("receipt r1 normalized wrong: %+v", r1)
	}
	if r1.Description != "Sewa Vario 125 - Budi" {
		t.Errorf("receipt r1 description = %q, want resolved tenant and vehicle", r1.Description)
	}
	if r1.ReferenceID != "r1" {
		t.Errorf("receipt r1 reference = %q, want r1", r1.ReferenceID)
	}

	r2 := byID["receipt:r2"]
	if r2.Account != core.AccountBank {
		t.Errorf("receipt r2 account = %v, want bank", r2.Account)
	}
	if r2.Description != "Unknown #missing" {
		t.Errorf("dangling receipt description = %q, want placeholder", r2.Description)
	}

	e1 := byID["expense:e1"]
	if e1.Type != core.EntryExpense || e1.Account != core.AccountCash {
		t.Errorf("expense without funding source should default to cash: %+v", e1)
	}
	if e1.Description != "bensin" {
		t.Errorf("expense e1 description = %q, want bensin", e1.Description)
	}

	e2 := byID["expense:e2"]
	if e2.Account != core.AccountEWallet {
		t.Errorf("expense e2 account = %v, want ewallet", e2.Account)
	}
	if e2.Description != "servis (ganti oli)" {
		t.Errorf("expense e2 description = %q, want category with note", e2.Description)
	}
}

func TestNormalize_NegativeAmountCoercedToZero(t *testing.T) {
	snap := Snapshot{
		Receipts: []core.PaymentReceipt{
			{ID: "r1", TransactionID: "t1", Date: core.NewDate(2024, 1, 5), AmountPaid: -10},
		},
	}
	entries := Normalize(snap)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Amount != 0 {
		t.Errorf("negative amount should coerce to 0, got %d", entries[0].Amount)
	}
}

func TestNormalize_Empty(t *testing.T) {
	entries := Normalize(Snapshot{})
	if len(entries) != 0 {
		t.Errorf("empty snapshot produced %d entries", len(entries))
	}
}
