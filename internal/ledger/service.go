package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pembukuan/internal/core"
	"pembukuan/internal/settings"
	"pembukuan/internal/store"
)

// ErrDataUnavailable wraps any snapshot-fetch failure. The engine either
// works from a complete, consistent snapshot or returns nothing; callers
// never see a partially-wrong balance.
var ErrDataUnavailable = errors.New("could not load financial data")

// Service wires the reconciliation engine to its stores. It holds no
// entry state of its own: every query fetches a fresh snapshot and
// recomputes.
type Service struct {
	receipts     store.ReceiptStore
	expenses     store.ExpenseStore
	transactions store.TransactionStore
	settings     *settings.Service

	now func() time.Time
}

func NewService(backend store.Backend) *Service {
	return &Service{
		receipts:     backend,
		expenses:     backend,
		transactions: backend,
		settings:     settings.NewService(backend),
		now:          time.Now,
	}
}

// Settings exposes the typed settings accessors sharing this service's
// store.
func (s *Service) Settings() *settings.Service {
	return s.settings
}

// fetchSnapshot gathers all store reads for one query. The fetches run
// concurrently; the first failure cancels the rest and surfaces as
// ErrDataUnavailable.
func (s *Service) fetchSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Receipts, err = s.receipts.ListReceipts(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Expenses, err = s.expenses.ListExpenses(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Transactions, err = s.transactions.ListTransactions(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Tenants, err = s.transactions.ListTenants(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Vehicles, err = s.transactions.ListVehicles(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Openings, err = s.settings.OpeningBalances(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return snap, nil
}

// LedgerView returns the cashbook view for the given filter. With an
// account filter the opening balance is that account's; without one it is
// the sum over all accounts. The synthetic opening row always carries the
// all-time opening balance, even under a month filter.
func (s *Service) LedgerView(ctx context.Context, f Filter) (core.LedgerView, error) {
	if f.Month != "" {
		if err := core.ValidateMonthKey(f.Month); err != nil {
			return core.LedgerView{}, err
		}
	}
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return core.LedgerView{}, err
	}

	var opening int64
	if f.Account != "" {
		opening = snap.Openings[f.Account]
	} else {
		for _, account := range core.Accounts() {
			opening += snap.Openings[account]
		}
	}
	return BuildView(Normalize(snap), opening, f), nil
}

// AccountBalances returns the all-time per-account snapshots for the
// dashboard tiles.
func (s *Service) AccountBalances(ctx context.Context) (map[core.Account]core.AccountBalanceSnapshot, error) {
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return AccountBalances(Normalize(snap), snap.Openings), nil
}

// MonthlySummary returns daily rollups and grand totals for one month.
func (s *Service) MonthlySummary(ctx context.Context, month string) (core.MonthlySummary, error) {
	if err := core.ValidateMonthKey(month); err != nil {
		return core.MonthlySummary{}, err
	}
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return core.MonthlySummary{}, err
	}
	entries := Apply(Normalize(snap), Filter{Month: month})
	return Summarize(month, entries), nil
}

// PaymentCompleteness reports per-transaction payment status using the
// penalty rate stored in settings.
func (s *Service) PaymentCompleteness(ctx context.Context) ([]TransactionPayment, error) {
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := s.settings.PenaltyRatePerDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	now := s.now()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	return CheckCompleteness(snap, rate, today), nil
}
