package ledger

import (
	"testing"

	"pembukuan/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  core.Account
	}{
		{name: "transfer bca", label: "Transfer BCA", want: core.AccountBank},
		{name: "bank keyword", label: "setor bank mandiri", want: core.AccountBank},
		{name: "gopay", label: "GoPay", want: core.AccountEWallet},
		{name: "dana", label: "DANA", want: core.AccountEWallet},
		{name: "ovo", label: "ovo", want: core.AccountEWallet},
		{name: "shopeepay", label: "ShopeePay", want: core.AccountEWallet},
		{name: "hyphenated e-wallet", label: "bayar via e-wallet", want: core.AccountEWallet},
		{name: "qris is ewallet", label: "QRIS", want: core.AccountEWallet},
		{name: "tunai falls through to cash", label: "tunai", want: core.AccountCash},
		{name: "empty label is cash", label: "", want: core.AccountCash},
		{name: "unknown label is cash", label: "cek mundur", want: core.AccountCash},
		{name: "bank wins over ewallet", label: "transfer dana ke toko", want: core.AccountBank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.label); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

// Every label lands in exactly one of the three accounts, so partitioning
// the entry set by account always covers 100% of entries.
func TestClassify_Coverage(t *testing.T) {
	labels := []string{"", "tunai", "Transfer BCA", "GoPay", "QRIS", "???", "kartu kredit", "DANA"}
	for _, label := range labels {
		if got := Classify(label); !got.Valid() {
			t.Errorf("Classify(%q) = %q, not a valid account", label, got)
		}
	}
}
