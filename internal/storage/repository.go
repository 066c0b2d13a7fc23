// Package storage is the SQLite backend for the bookkeeping stores.
// It returns snapshots only; the ledger engine never reads rows
// incrementally.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pembukuan/internal/core"
	"pembukuan/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Backend = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListReceipts(ctx context.Context) ([]core.PaymentReceipt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, transaction_id, date, amount_paid, payment_method FROM payment_receipts`)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []core.PaymentReceipt
	for rows.Next() {
		var (
			rec     core.PaymentReceipt
			isoDate string
		)
		if err := rows.Scan(&rec.ID, &rec.TransactionID, &isoDate, &rec.AmountPaid, &rec.PaymentMethod); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		rec.Date = scanDate(ctx, isoDate, "payment_receipts", rec.ID)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) AppendReceipt(ctx context.Context, rec core.PaymentReceipt) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_receipts (id, transaction_id, date, amount_paid, payment_method)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.TransactionID, rec.Date.ISO(), rec.AmountPaid, rec.PaymentMethod)
	if err != nil {
		return "", fmt.Errorf("insert receipt: %w", err)
	}

	slog.InfoContext(ctx, "Receipt saved",
		"id", rec.ID,
		"transaction_id", rec.TransactionID,
		"amount_paid", rec.AmountPaid,
		"payment_method", rec.PaymentMethod)
	return rec.ID, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount, category, note, funding_source FROM expenses`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			exp     core.Expense
			isoDate string
		)
		if err := rows.Scan(&exp.ID, &isoDate, &exp.Amount, &exp.Category, &exp.Note, &exp.FundingSource); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		exp.Date = scanDate(ctx, isoDate, "expenses", exp.ID)
		out = append(out, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) AppendExpense(ctx context.Context, exp core.Expense) (string, error) {
	if err := exp.Validate(); err != nil {
		return "", err
	}
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, date, amount, category, note, funding_source)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.Date.ISO(), exp.Amount, exp.Category, exp.Note, exp.FundingSource)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", exp.ID,
		"category", exp.Category,
		"amount", exp.Amount)
	return exp.ID, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.RentalTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, vehicle_id, start_date, end_date, total_amount FROM rental_transactions`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.RentalTransaction
	for rows.Next() {
		var (
			tx         core.RentalTransaction
			start, end string
		)
		if err := rows.Scan(&tx.ID, &tx.TenantID, &tx.VehicleID, &start, &end, &tx.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.StartDate = scanDate(ctx, start, "rental_transactions", tx.ID)
		if end != "" {
			tx.EndDate = scanDate(ctx, end, "rental_transactions", tx.ID)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tenants`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var out []core.Tenant
	for rows.Next() {
		var t core.Tenant
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) ListVehicles(ctx context.Context) ([]core.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, plate FROM vehicles`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var out []core.Vehicle
	for rows.Next() {
		var v core.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Plate); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// scanDate parses a stored ISO date. A corrupt value degrades to the zero
// date with a warning instead of failing the snapshot read; downstream
// validation and filters treat the zero date as missing.
func scanDate(ctx context.Context, iso, table, id string) core.Date {
	d, err := core.ParseDate(iso)
	if err != nil {
		slog.WarnContext(ctx, "Malformed date in store",
			"table", table,
			"id", id,
			"value", iso)
		return core.Date{}
	}
	return d
}
