// Package memory is the in-memory storage backend: the default for local
// runs and the test double for everything above the store ports.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pembukuan/internal/core"
	"pembukuan/internal/store"
)

type Store struct {
	mu           sync.Mutex
	receipts     []core.PaymentReceipt
	expenses     []core.Expense
	transactions []core.RentalTransaction
	tenants      []core.Tenant
	vehicles     []core.Vehicle
	settings     map[string]string
}

var _ store.Backend = (*Store)(nil)

func New() *Store {
	return &Store{settings: make(map[string]string)}
}

// ListReceipts returns a copy of all receipts so callers can never mutate
// internal state.
func (s *Store) ListReceipts(_ context.Context) ([]core.PaymentReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.PaymentReceipt, len(s.receipts))
	copy(out, s.receipts)
	return out, nil
}

func (s *Store) AppendReceipt(_ context.Context, r core.PaymentReceipt) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.receipts = append(s.receipts, r)
	return r.ID, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *Store) AppendExpense(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.RentalTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.RentalTransaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *Store) ListTenants(_ context.Context) ([]core.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Tenant, len(s.tenants))
	copy(out, s.tenants)
	return out, nil
}

func (s *Store) ListVehicles(_ context.Context) ([]core.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// SeedTransaction installs a rental transaction with its tenant and
// vehicle. Test and demo helper; ids are minted when absent.
func (s *Store) SeedTransaction(tx core.RentalTransaction, tenant core.Tenant, vehicle core.Vehicle) core.RentalTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.TenantID = tenant.ID
	tx.VehicleID = vehicle.ID
	s.tenants = append(s.tenants, tenant)
	s.vehicles = append(s.vehicles, vehicle)
	s.transactions = append(s.transactions, tx)
	return tx
}
