// Package ledger is the reconciliation engine: it turns raw receipt and
// expense snapshots into a chronologically ordered cash ledger with
// per-account running balances, all-time balance snapshots, monthly
// reports, and payment-completeness checks. Every computation here is a
// pure function over an immutable snapshot; nothing is cached across
// calls.
package ledger

import (
	"strings"

	"pembukuan/internal/core"
)

// Keyword rules for payment-method and funding-source labels. Ordered,
// first match wins; matching is case-insensitive substring containment.
var (
	bankTokens = []string{"transfer", "bank"}

	// QRIS settles through e-wallet rails, so it lives here rather than
	// in the cash fallback.
	ewalletTokens = []string{"ewallet", "e-wallet", "qris", "dana", "ovo", "gopay", "shopeepay", "linkaja"}
)

// Classify maps a free-text payment-method or funding-source label to its
// account. Unrecognized labels (including "tunai" and the empty string)
// fall through to Cash: every entry must land in exactly one bucket, so
// classification never fails.
func Classify(label string) core.Account {
	l := strings.ToLower(label)
	for _, token := range bankTokens {
		if strings.Contains(l, token) {
			return core.AccountBank
		}
	}
	for _, token := range ewalletTokens {
		if strings.Contains(l, token) {
			return core.AccountEWallet
		}
	}
	return core.AccountCash
}
