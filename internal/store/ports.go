// Package store defines the ports the ledger engine consumes. Every
// implementation returns immutable snapshots: the engine recomputes its
// views from a full snapshot on each query and never holds onto a
// store-owned collection.
package store

import (
	"context"

	"pembukuan/internal/core"
)

// Ports for outbound adapters.
type (
	ReceiptStore interface {
		// ListReceipts returns a snapshot of all payment receipts.
		ListReceipts(ctx context.Context) ([]core.PaymentReceipt, error)
		AppendReceipt(ctx context.Context, r core.PaymentReceipt) (id string, err error)
	}

	ExpenseStore interface {
		// ListExpenses returns a snapshot of all expense records.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		AppendExpense(ctx context.Context, e core.Expense) (id string, err error)
	}

	// TransactionStore resolves the weak references receipts carry.
	// Used for display labels only, never for integrity checks.
	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.RentalTransaction, error)
		ListTenants(ctx context.Context) ([]core.Tenant, error)
		ListVehicles(ctx context.Context) ([]core.Vehicle, error)
	}

	// SettingsStore is a generic key/value store. A missing key is not an
	// error; ok reports presence.
	SettingsStore interface {
		Get(ctx context.Context, key string) (value string, ok bool, err error)
		Set(ctx context.Context, key, value string) error
	}
)

// Backend bundles every port a full storage backend provides.
type Backend interface {
	ReceiptStore
	ExpenseStore
	TransactionStore
	SettingsStore
}
