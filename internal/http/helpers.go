package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pembukuan/internal/core"
	"pembukuan/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps engine errors onto HTTP statuses. A failed
// snapshot fetch is always the same 503; the client never sees a partial
// ledger.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrDataUnavailable):
		slog.ErrorContext(r.Context(), "Snapshot fetch failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, ledger.ErrDataUnavailable.Error())
	case errors.Is(err, core.ErrInvalidMonthKey), errors.Is(err, core.ErrInvalidAccount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseFilter reads the optional month and account query parameters.
func parseFilter(r *http.Request) (ledger.Filter, error) {
	var f ledger.Filter
	if month := r.URL.Query().Get("month"); month != "" {
		if err := core.ValidateMonthKey(month); err != nil {
			return ledger.Filter{}, err
		}
		f.Month = month
	}
	if account := r.URL.Query().Get("account"); account != "" {
		parsed, err := core.ParseAccount(account)
		if err != nil {
			return ledger.Filter{}, err
		}
		f.Account = parsed
	}
	return f, nil
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
