package events

import (
	"encoding/json"
	"time"
)

// Routing keys for published events.
const (
	RouteSettingsUpdated = "settings.updated"
	RouteRecordAppended  = "record.appended"
)

// Record kinds carried by RecordAppended.
const (
	RecordKindReceipt = "receipt"
	RecordKindExpense = "expense"
)

// SettingsUpdated announces that opening balances or the penalty rate
// changed. Consumers refetch through the API; the message carries only
// what changed, not the ledger.
type SettingsUpdated struct {
	OpeningBalances map[string]int64 `json:"opening_balances,omitempty"`
	PenaltyRate     string           `json:"penalty_rate,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// RecordAppended announces a newly stored receipt or expense, by id.
// External export workers fetch the full record themselves.
type RecordAppended struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSettingsUpdated(openings map[string]int64, penaltyRate string) *SettingsUpdated {
	return &SettingsUpdated{
		OpeningBalances: openings,
		PenaltyRate:     penaltyRate,
		Timestamp:       time.Now(),
	}
}

func NewRecordAppended(kind, id string) *RecordAppended {
	return &RecordAppended{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *SettingsUpdated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *RecordAppended) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
