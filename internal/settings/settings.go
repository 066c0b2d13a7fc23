// Package settings provides typed access to the key/value settings store:
// per-account opening balances and the per-day late-penalty rate.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"pembukuan/internal/core"
	"pembukuan/internal/store"
)

// Settings keys. The three per-account opening-balance keys are
// authoritative; KeyOpeningBalanceLegacy is the old unscoped key some
// views used to read. It is honored as a fallback for Cash and rewritten
// on every save so stale readers keep agreeing with the ledger.
const (
	KeyOpeningBalanceCash    = "opening_balance.cash"
	KeyOpeningBalanceBank    = "opening_balance.bank"
	KeyOpeningBalanceEWallet = "opening_balance.ewallet"
	KeyOpeningBalanceLegacy  = "opening_balance"
	KeyPenaltyRatePerDay     = "penalty_rate_per_day"
)

func openingBalanceKey(account core.Account) string {
	switch account {
	case core.AccountBank:
		return KeyOpeningBalanceBank
	case core.AccountEWallet:
		return KeyOpeningBalanceEWallet
	default:
		return KeyOpeningBalanceCash
	}
}

// Service reads and writes engine settings through a SettingsStore.
type Service struct {
	store store.SettingsStore
}

func NewService(s store.SettingsStore) *Service {
	return &Service{store: s}
}

// OpeningBalances returns the opening balance for every account. Missing
// keys default to 0; a malformed stored value is coerced to 0 and logged,
// never propagated as an error. Openings may be negative.
func (s *Service) OpeningBalances(ctx context.Context) (map[core.Account]int64, error) {
	out := make(map[core.Account]int64, 3)
	for _, account := range core.Accounts() {
		raw, ok, err := s.store.Get(ctx, openingBalanceKey(account))
		if err != nil {
			return nil, fmt.Errorf("read opening balance %s: %w", account, err)
		}
		if !ok && account == core.AccountCash {
			// Old installs carry only the unscoped key.
			raw, ok, err = s.store.Get(ctx, KeyOpeningBalanceLegacy)
			if err != nil {
				return nil, fmt.Errorf("read legacy opening balance: %w", err)
			}
		}
		if !ok {
			out[account] = 0
			continue
		}
		out[account] = parseSigned(ctx, raw, string(account))
	}
	return out, nil
}

// SaveOpeningBalances persists the given balances. Accounts absent from
// the map keep their stored value. The legacy unscoped key is rewritten
// to the Cash value whenever Cash is saved.
func (s *Service) SaveOpeningBalances(ctx context.Context, balances map[core.Account]int64) error {
	for _, account := range core.Accounts() {
		value, ok := balances[account]
		if !ok {
			continue
		}
		encoded := strconv.FormatInt(value, 10)
		if err := s.store.Set(ctx, openingBalanceKey(account), encoded); err != nil {
			return fmt.Errorf("save opening balance %s: %w", account, err)
		}
		if account == core.AccountCash {
			if err := s.store.Set(ctx, KeyOpeningBalanceLegacy, encoded); err != nil {
				return fmt.Errorf("save legacy opening balance: %w", err)
			}
		}
	}
	return nil
}

// PenaltyRatePerDay returns the late-penalty rate in rupiah per day.
// The rate may be fractional ("2500.5"); missing or malformed values
// default to zero.
func (s *Service) PenaltyRatePerDay(ctx context.Context) (decimal.Decimal, error) {
	raw, ok, err := s.store.Get(ctx, KeyPenaltyRatePerDay)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read penalty rate: %w", err)
	}
	if !ok {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		slog.WarnContext(ctx, "Malformed penalty rate in settings, using zero",
			"value", raw)
		return decimal.Zero, nil
	}
	return rate, nil
}

// SavePenaltyRatePerDay persists the late-penalty rate.
func (s *Service) SavePenaltyRatePerDay(ctx context.Context, rate decimal.Decimal) error {
	if err := s.store.Set(ctx, KeyPenaltyRatePerDay, rate.String()); err != nil {
		return fmt.Errorf("save penalty rate: %w", err)
	}
	return nil
}

func parseSigned(ctx context.Context, raw, account string) int64 {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	// Old installs stored display-formatted values ("Rp 100.000"); values
	// with no digits at all coerce to 0.
	v := core.ParseAmount(raw)
	slog.WarnContext(ctx, "Non-canonical opening balance in settings",
		"account", account,
		"value", raw,
		"parsed", v)
	return v
}
