package core

const (
	RowEntry   RowKind = "entry"
	RowOpening RowKind = "opening"
)

// OpeningRowLabel is the description shown on the synthetic opening row.
const OpeningRowLabel = "Saldo Awal"

type (
	// RowKind distinguishes real ledger entries from the synthetic
	// opening-balance row terminating a view.
	RowKind string

	// LedgerRow is one line of a cashbook view: a ledger entry annotated
	// with the running balance after it, or the synthetic opening row.
	LedgerRow struct {
		Kind           RowKind   `json:"kind"`
		ID             string    `json:"id,omitempty"`
		Date           Date      `json:"date,omitempty"`
		Type           EntryType `json:"type,omitempty"`
		Account        Account   `json:"account,omitempty"`
		Amount         int64     `json:"amount,omitempty"`
		ReferenceID    string    `json:"reference_id,omitempty"`
		Description    string    `json:"description,omitempty"`
		RunningBalance int64     `json:"running_balance"`
		// AmountDisplay is the formatted rupiah string shown in the
		// cashbook table ("Rp50.000").
		AmountDisplay string `json:"amount_display,omitempty"`
	}

	// LedgerView is the ordered, filtered cashbook output: rows newest
	// first, each with its running balance. Query-scoped and immutable;
	// never cached across calls.
	LedgerView struct {
		Rows         []LedgerRow `json:"rows"`
		Opening      int64       `json:"opening"`
		FinalBalance int64       `json:"final_balance"`
	}

	// AccountBalanceSnapshot is the all-time state of one account,
	// independent of any period filter.
	AccountBalanceSnapshot struct {
		Account     Account `json:"account"`
		Opening     int64   `json:"opening"`
		Inflow      int64   `json:"inflow"`
		Outflow     int64   `json:"outflow"`
		Balance     int64   `json:"balance"`
		IsOverdrawn bool    `json:"is_overdrawn"`
	}

	// DailyRollup aggregates one calendar date within a reporting period.
	DailyRollup struct {
		Date    Date  `json:"date"`
		Inflow  int64 `json:"inflow"`
		Outflow int64 `json:"outflow"`
		Net     int64 `json:"net"`
	}

	// MonthlySummary is the ascending sequence of daily rollups for a
	// month plus grand totals.
	MonthlySummary struct {
		Month        string        `json:"month"`
		Days         []DailyRollup `json:"days"`
		TotalInflow  int64         `json:"total_inflow"`
		TotalOutflow int64         `json:"total_outflow"`
		Net          int64         `json:"net"`
	}
)
