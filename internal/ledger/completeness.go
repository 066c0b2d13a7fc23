package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"pembukuan/internal/core"
)

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

type (
	PaymentStatus string

	// TransactionPayment reports how completely one rental transaction
	// has been paid, including any late penalty accrued past the agreed
	// return date.
	TransactionPayment struct {
		TransactionID string        `json:"transaction_id"`
		Tenant        string        `json:"tenant,omitempty"`
		Vehicle       string        `json:"vehicle,omitempty"`
		EndDate       core.Date     `json:"end_date"`
		Total         int64         `json:"total"`
		Penalty       int64         `json:"penalty"`
		Paid          int64         `json:"paid"`
		Outstanding   int64         `json:"outstanding"`
		DaysLate      int64         `json:"days_late"`
		Status        PaymentStatus `json:"status"`
	}
)

// CheckCompleteness compares what each transaction's receipts add up to
// against the agreed total plus late penalty. The penalty is
// daysLate x ratePerDay, accrued only while the transaction is not fully
// settled past its end date; the fractional rate is rounded to whole
// rupiah once, at the end. Receipt sums use an id-keyed map, not a scan
// per transaction.
func CheckCompleteness(snap Snapshot, ratePerDay decimal.Decimal, today core.Date) []TransactionPayment {
	paidByTx := make(map[string]int64, len(snap.Transactions))
	for _, r := range snap.Receipts {
		paidByTx[r.TransactionID] += clampAmount(r.AmountPaid)
	}
	tenantByID := make(map[string]core.Tenant, len(snap.Tenants))
	for _, tn := range snap.Tenants {
		tenantByID[tn.ID] = tn
	}
	vehicleByID := make(map[string]core.Vehicle, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		vehicleByID[v.ID] = v
	}

	out := make([]TransactionPayment, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		paid := paidByTx[tx.ID]
		total := clampAmount(tx.TotalAmount)

		var daysLate, penalty int64
		if !tx.EndDate.IsZero() && today.After(tx.EndDate.Time) && paid < total {
			daysLate = int64(today.Sub(tx.EndDate.Time).Hours() / 24)
			penalty = ratePerDay.Mul(decimal.NewFromInt(daysLate)).Round(0).IntPart()
		}

		due := total + penalty
		outstanding := due - paid
		if outstanding < 0 {
			outstanding = 0
		}

		status := StatusUnpaid
		switch {
		case paid >= due:
			status = StatusPaid
		case paid > 0:
			status = StatusPartial
		}

		out = append(out, TransactionPayment{
			TransactionID: tx.ID,
			Tenant:        tenantByID[tx.TenantID].Name,
			Vehicle:       vehicleByID[tx.VehicleID].Name,
			EndDate:       tx.EndDate,
			Total:         total,
			Penalty:       penalty,
			Paid:          paid,
			Outstanding:   outstanding,
			DaysLate:      daysLate,
			Status:        status,
		})
	}

	// Unsettled first, then by end date so the oldest debt tops the list.
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Status == StatusPaid) != (out[j].Status == StatusPaid) {
			return out[i].Status != StatusPaid
		}
		return out[i].EndDate.Before(out[j].EndDate.Time)
	})
	return out
}
