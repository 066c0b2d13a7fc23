// Package http exposes the bookkeeping engine as a JSON API: the
// cashbook table, the dashboard balance tiles, the monthly report, the
// payment-completeness list, settings, and the record append endpoints.
package http

import (
	"net/http"
	"time"

	applog "pembukuan/internal/log"

	"pembukuan/internal/events"
	"pembukuan/internal/ledger"
	"pembukuan/internal/store"
)

type Server struct {
	http.Server

	ledger    *ledger.Service
	receipts  store.ReceiptStore
	expenses  store.ExpenseStore
	publisher *events.Publisher
	logger    *applog.Logger
	limiter   *writeLimiter
}

// NewServer builds the API server. publisher may be nil; append and
// settings handlers then skip event publishing.
func NewServer(addr string, svc *ledger.Service, backend store.Backend, publisher *events.Publisher, logger *applog.Logger) *Server {
	s := &Server{
		ledger:    svc,
		receipts:  backend,
		expenses:  backend,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentHTTP),
		limiter:   newWriteLimiter(writeRequestsPerMinute),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cashbook", s.handleCashbook)
	mux.HandleFunc("GET /api/balances", s.handleBalances)
	mux.HandleFunc("GET /api/reports/monthly", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/completeness", s.handleCompleteness)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.limiter.middleware(s.handlePutSettings))
	mux.HandleFunc("POST /api/receipts", s.limiter.middleware(s.handleCreateReceipt))
	mux.HandleFunc("POST /api/expenses", s.limiter.middleware(s.handleCreateExpense))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.Server = http.Server{
		Addr:    addr,
		Handler: applog.RequestLogger(s.logger)(securityHeaders(mux)),
	}
	s.Server.RegisterOnShutdown(s.limiter.Stop)
	return s
}

// handlerTimeout bounds each data handler; all work is in-process plus
// one snapshot fetch.
const handlerTimeout = 7 * time.Second

// writeRequestsPerMinute caps each client on the mutating endpoints.
const writeRequestsPerMinute = 60

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
