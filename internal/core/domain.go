package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	AccountCash    Account = "cash"
	AccountBank    Account = "bank"
	AccountEWallet Account = "ewallet"
)

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

type (
	// Account is the bucket money resides in. Every ledger entry resolves
	// to exactly one account.
	Account string

	// EntryType tags a ledger entry as money in or money out.
	EntryType string

	// Date is a calendar date with no time component. The zero value is
	// the missing date.
	Date struct {
		time.Time
	}

	// LedgerEntry is a derived, in-memory ledger line. It is rebuilt from
	// the stores on every query and never persisted.
	LedgerEntry struct {
		ID          string    `json:"id"`
		Date        Date      `json:"date"`
		Type        EntryType `json:"type"`
		Account     Account   `json:"account"`
		Amount      int64     `json:"amount"`
		ReferenceID string    `json:"reference_id"`
		Description string    `json:"description"`
	}

	// PaymentReceipt records money received against a rental transaction.
	PaymentReceipt struct {
		ID            string `json:"id"`
		TransactionID string `json:"transaction_id"`
		Date          Date   `json:"date"`
		AmountPaid    int64  `json:"amount_paid"`
		PaymentMethod string `json:"payment_method"`
	}

	// Expense records money paid out for operating costs. FundingSource
	// is optional; an empty value means the expense was paid in cash.
	Expense struct {
		ID            string `json:"id"`
		Date          Date   `json:"date"`
		Amount        int64  `json:"amount"`
		Category      string `json:"category"`
		Note          string `json:"note,omitempty"`
		FundingSource string `json:"funding_source,omitempty"`
	}

	// RentalTransaction is the rental agreement a receipt pays against.
	// Referenced weakly by receipts, for display labels only.
	RentalTransaction struct {
		ID          string `json:"id"`
		TenantID    string `json:"tenant_id"`
		VehicleID   string `json:"vehicle_id"`
		StartDate   Date   `json:"start_date"`
		EndDate     Date   `json:"end_date"`
		TotalAmount int64  `json:"total_amount"`
	}

	Tenant struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Vehicle struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Plate string `json:"plate"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidAccount  = errors.New("invalid account")
	ErrEmptyCategory   = errors.New("empty expense category")
	ErrEmptyReference  = errors.New("empty transaction reference")
	ErrInvalidMonthKey = errors.New("invalid month, expected YYYY-MM")
)

// Accounts returns all accounts in display order.
func Accounts() []Account {
	return []Account{AccountCash, AccountBank, AccountEWallet}
}

// ParseAccount maps a query-string value onto an Account.
func ParseAccount(s string) (Account, error) {
	switch Account(strings.ToLower(strings.TrimSpace(s))) {
	case AccountCash:
		return AccountCash, nil
	case AccountBank:
		return AccountBank, nil
	case AccountEWallet:
		return AccountEWallet, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAccount, s)
}

func (a Account) Valid() bool {
	return a == AccountCash || a == AccountBank || a == AccountEWallet
}

// Sign is +1 for income and -1 for expense.
func (t EntryType) Sign() int64 {
	if t == EntryExpense {
		return -1
	}
	return 1
}

// Signed returns the amount with the entry's sign applied.
func (e LedgerEntry) Signed() int64 {
	return e.Type.Sign() * e.Amount
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// YearMonth renders the date's year-month prefix as YYYY-MM.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ValidateMonthKey checks a YYYY-MM month selector.
func ValidateMonthKey(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonthKey, month)
	}
	return nil
}

func (r PaymentReceipt) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.TransactionID) == "" {
		return ErrEmptyReference
	}
	if r.AmountPaid <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
