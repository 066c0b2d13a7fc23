package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"pembukuan/internal/core"
	"pembukuan/internal/events"
)

// handleCashbook returns the ledger view for the cashbook table, newest
// first with running balances.
func (s *Server) handleCashbook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.ledger.LedgerView(ctx, filter)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleBalances returns the all-time per-account snapshots for the
// dashboard tiles.
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	balances, err := s.ledger.AccountBalances(ctx)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

// handleMonthlyReport returns daily rollups and totals for one month.
// The month parameter is required here, unlike the cashbook filter.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month parameter is required")
		return
	}

	summary, err := s.ledger.MonthlySummary(ctx, month)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCompleteness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	payments, err := s.ledger.PaymentCompleteness(ctx)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

type settingsPayload struct {
	OpeningBalances map[string]int64 `json:"opening_balances"`
	PenaltyRate     string           `json:"penalty_rate"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	openings, err := s.ledger.Settings().OpeningBalances(ctx)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	rate, err := s.ledger.Settings().PenaltyRatePerDay(ctx)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	payload := settingsPayload{
		OpeningBalances: make(map[string]int64, len(openings)),
		PenaltyRate:     rate.String(),
	}
	for account, value := range openings {
		payload.OpeningBalances[string(account)] = value
	}
	writeJSON(w, http.StatusOK, payload)
}

// handlePutSettings is the explicit "save settings" action: the only
// writer of opening balances.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var payload settingsPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	openings := make(map[core.Account]int64, len(payload.OpeningBalances))
	for name, value := range payload.OpeningBalances {
		account, err := core.ParseAccount(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		openings[account] = value
	}

	var rate decimal.Decimal
	if payload.PenaltyRate != "" {
		parsed, err := decimal.NewFromString(payload.PenaltyRate)
		if err != nil || parsed.IsNegative() {
			writeError(w, http.StatusBadRequest, "invalid penalty rate")
			return
		}
		rate = parsed
	}

	if err := s.ledger.Settings().SaveOpeningBalances(ctx, openings); err != nil {
		writeEngineError(w, r, err)
		return
	}
	if payload.PenaltyRate != "" {
		if err := s.ledger.Settings().SavePenaltyRatePerDay(ctx, rate); err != nil {
			writeEngineError(w, r, err)
			return
		}
	}

	// Best effort; the save already succeeded.
	if err := s.publisher.PublishSettingsUpdated(ctx,
		events.NewSettingsUpdated(payload.OpeningBalances, payload.PenaltyRate)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish settings event", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleCreateReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var receipt core.PaymentReceipt
	if err := decodeBody(r, &receipt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id, err := s.receipts.AppendReceipt(ctx, receipt)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeEngineError(w, r, err)
		return
	}

	if err := s.publisher.PublishRecordAppended(ctx,
		events.NewRecordAppended(events.RecordKindReceipt, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event", "error", err, "id", id)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var expense core.Expense
	if err := decodeBody(r, &expense); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id, err := s.expenses.AppendExpense(ctx, expense)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeEngineError(w, r, err)
		return
	}

	if err := s.publisher.PublishRecordAppended(ctx,
		events.NewRecordAppended(events.RecordKindExpense, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event", "error", err, "id", id)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrEmptyReference)
}
