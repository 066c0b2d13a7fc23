package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pembukuan/internal/core"
	"pembukuan/internal/ledger"
	applog "pembukuan/internal/log"
	"pembukuan/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	backend := memory.New()
	svc := ledger.NewService(backend)
	logger := applog.New(applog.DefaultConfig())
	return NewServer(":0", svc, backend, nil, logger), backend
}

func seedScenarioA(t *testing.T, backend *memory.Store) {
	t.Helper()
	ctx := context.Background()
	tx := backend.SeedTransaction(
		core.RentalTransaction{StartDate: core.NewDate(2024, 1, 1), EndDate: core.NewDate(2024, 1, 10), TotalAmount: 150000},
		core.Tenant{Name: "Budi"},
		core.Vehicle{Name: "Vario 125"},
	)
	if _, err := backend.AppendReceipt(ctx, core.PaymentReceipt{
		TransactionID: tx.ID,
		Date:          core.NewDate(2024, 1, 5),
		AmountPaid:    50000,
		PaymentMethod: "tunai",
	}); err != nil {
		t.Fatalf("seed receipt: %v", err)
	}
	if _, err := backend.AppendExpense(ctx, core.Expense{
		Date:     core.NewDate(2024, 1, 6),
		Amount:   20000,
		Category: "bensin",
	}); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	if err := ledger.NewService(backend).Settings().SaveOpeningBalances(ctx, map[core.Account]int64{
		core.AccountCash: 100000,
	}); err != nil {
		t.Fatalf("seed openings: %v", err)
	}
}

func doRequest(s *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleCashbook(t *testing.T) {
	srv, backend := newTestServer(t)
	seedScenarioA(t, backend)

	rec := doRequest(srv, http.MethodGet, "/api/cashbook?account=cash", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var view core.LedgerView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.FinalBalance != 130000 {
		t.Errorf("final balance = %d, want 130000", view.FinalBalance)
	}
	if len(view.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(view.Rows))
	}
	if view.Rows[0].RunningBalance != 130000 || view.Rows[1].RunningBalance != 150000 {
		t.Errorf("running balances = %d, %d; want 130000, 150000",
			view.Rows[0].RunningBalance, view.Rows[1].RunningBalance)
	}
	if view.Rows[2].Kind != core.RowOpening || view.Rows[2].RunningBalance != 100000 {
		t.Errorf("opening row = %+v", view.Rows[2])
	}
}

func TestHandleCashbook_BadParams(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := doRequest(srv, http.MethodGet, "/api/cashbook?month=nope", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad month: status = %d, want 400", rec.Code)
	}
	if rec := doRequest(srv, http.MethodGet, "/api/cashbook?account=crypto", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad account: status = %d, want 400", rec.Code)
	}
}

func TestHandleBalances(t *testing.T) {
	srv, backend := newTestServer(t)
	seedScenarioA(t, backend)

	rec := doRequest(srv, http.MethodGet, "/api/balances", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var balances map[core.Account]core.AccountBalanceSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &balances); err != nil {
		t.Fatalf("decode: %v", err)
	}
	cash := balances[core.AccountCash]
	if cash.Balance != 130000 || cash.IsOverdrawn {
		t.Errorf("cash = %+v, want balance 130000", cash)
	}
}

func TestHandleMonthlyReport(t *testing.T) {
	srv, backend := newTestServer(t)
	seedScenarioA(t, backend)

	rec := doRequest(srv, http.MethodGet, "/api/reports/monthly?month=2024-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var summary core.MonthlySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalInflow != 50000 || summary.TotalOutflow != 20000 {
		t.Errorf("totals = %d/%d, want 50000/20000", summary.TotalInflow, summary.TotalOutflow)
	}

	if rec := doRequest(srv, http.MethodGet, "/api/reports/monthly", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing month: status = %d, want 400", rec.Code)
	}
}

func TestHandleSettings_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"opening_balances":{"cash":100000,"bank":-5000},"penalty_rate":"2500"}`
	if rec := doRequest(srv, http.MethodPut, "/api/settings", body); rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", rec.Code, rec.Body)
	}

	rec := doRequest(srv, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var payload settingsPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.OpeningBalances["cash"] != 100000 || payload.OpeningBalances["bank"] != -5000 {
		t.Errorf("openings = %v", payload.OpeningBalances)
	}
	if payload.PenaltyRate != "2500" {
		t.Errorf("penalty rate = %q, want 2500", payload.PenaltyRate)
	}
}

func TestHandleSettings_Invalid(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := doRequest(srv, http.MethodPut, "/api/settings", `{"opening_balances":{"gold":1}}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown account: status = %d, want 400", rec.Code)
	}
	if rec := doRequest(srv, http.MethodPut, "/api/settings", `{"penalty_rate":"-1"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("negative rate: status = %d, want 400", rec.Code)
	}
	if rec := doRequest(srv, http.MethodPut, "/api/settings", `not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad body: status = %d, want 400", rec.Code)
	}
}

func TestHandleCreateReceipt(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"transaction_id":"t1","date":"2024-01-05","amount_paid":50000,"payment_method":"tunai"}`
	rec := doRequest(srv, http.MethodPost, "/api/receipts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["id"] == "" {
		t.Error("no id in response")
	}

	invalid := `{"transaction_id":"","date":"2024-01-05","amount_paid":50000}`
	if rec := doRequest(srv, http.MethodPost, "/api/receipts", invalid); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid receipt: status = %d, want 400", rec.Code)
	}
}

func TestHandleCreateExpense(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"date":"2024-01-06","amount":20000,"category":"bensin","note":"isi full"}`
	if rec := doRequest(srv, http.MethodPost, "/api/expenses", body); rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	invalid := `{"date":"2024-01-06","amount":0,"category":"bensin"}`
	if rec := doRequest(srv, http.MethodPost, "/api/expenses", invalid); rec.Code != http.StatusBadRequest {
		t.Errorf("zero amount: status = %d, want 400", rec.Code)
	}
}

type brokenBackend struct {
	memory.Store
}

func (b *brokenBackend) ListExpenses(context.Context) ([]core.Expense, error) {
	return nil, errors.New("table locked")
}

func TestHandlers_DataUnavailable(t *testing.T) {
	backend := &brokenBackend{}
	svc := ledger.NewService(backend)
	srv := NewServer(":0", svc, backend, nil, applog.New(applog.DefaultConfig()))

	for _, target := range []string{"/api/cashbook", "/api/balances", "/api/reports/monthly?month=2024-01", "/api/completeness"} {
		rec := doRequest(srv, http.MethodGet, target, "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", target, rec.Code)
			continue
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode: %v", target, err)
		}
		if resp.Error != "could not load financial data" {
			t.Errorf("%s: error = %q", target, resp.Error)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}
