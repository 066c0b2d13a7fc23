package ledger

import (
	"fmt"

	"pembukuan/internal/core"
)

// Snapshot is one consistent read of everything the engine needs. It is
// fetched once per query and discarded after the caller consumes the
// derived view.
type Snapshot struct {
	Receipts     []core.PaymentReceipt
	Expenses     []core.Expense
	Transactions []core.RentalTransaction
	Tenants      []core.Tenant
	Vehicles     []core.Vehicle
	Openings     map[core.Account]int64
}

// Normalize converts the snapshot's receipts and expenses into the common
// ledger-entry shape, classifying each onto an account. Display names are
// resolved through id-keyed lookup maps built once per pass. A receipt
// whose transaction id cannot be resolved still produces a valid entry
// with a placeholder description; a negative stored amount is coerced to
// 0. Normalization never fails.
func Normalize(snap Snapshot) []core.LedgerEntry {
	txByID := make(map[string]core.RentalTransaction, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		txByID[tx.ID] = tx
	}
	tenantByID := make(map[string]core.Tenant, len(snap.Tenants))
	for _, tn := range snap.Tenants {
		tenantByID[tn.ID] = tn
	}
	vehicleByID := make(map[string]core.Vehicle, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		vehicleByID[v.ID] = v
	}

	entries := make([]core.LedgerEntry, 0, len(snap.Receipts)+len(snap.Expenses))
	for _, r := range snap.Receipts {
		entries = append(entries, core.LedgerEntry{
			ID:          "receipt:" + r.ID,
			Date:        r.Date,
			Type:        core.EntryIncome,
			Account:     Classify(r.PaymentMethod),
			Amount:      clampAmount(r.AmountPaid),
			ReferenceID: r.ID,
			Description: receiptDescription(r, txByID, tenantByID, vehicleByID),
		})
	}
	for _, e := range snap.Expenses {
		account := core.AccountCash // default funding source
		if e.FundingSource != "" {
			account = Classify(e.FundingSource)
		}
		entries = append(entries, core.LedgerEntry{
			ID:          "expense:" + e.ID,
			Date:        e.Date,
			Type:        core.EntryExpense,
			Account:     account,
			Amount:      clampAmount(e.Amount),
			ReferenceID: e.ID,
			Description: expenseDescription(e),
		})
	}
	return entries
}

func receiptDescription(
	r core.PaymentReceipt,
	txByID map[string]core.RentalTransaction,
	tenantByID map[string]core.Tenant,
	vehicleByID map[string]core.Vehicle,
) string {
	tx, ok := txByID[r.TransactionID]
	if !ok {
		// Dangling reference: keep the entry, label it.
		return fmt.Sprintf("Unknown #%s", r.TransactionID)
	}
	tenant := tenantByID[tx.TenantID].Name
	vehicle := vehicleByID[tx.VehicleID].Name
	switch {
	case tenant != "" && vehicle != "":
		return fmt.Sprintf("Sewa %s - %s", vehicle, tenant)
	case vehicle != "":
		return "Sewa " + vehicle
	case tenant != "":
		return "Sewa - " + tenant
	default:
		return fmt.Sprintf("Sewa #%s", tx.ID)
	}
}

func expenseDescription(e core.Expense) string {
	if e.Note != "" {
		return e.Category + " (" + e.Note + ")"
	}
	return e.Category
}

func clampAmount(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
