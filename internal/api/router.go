// Package api exposes the ledger core over a REST surface under /api/v1.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/report"
)

// NewRouter assembles the full route tree.
func NewRouter(ledgerSvc *ledger.Service, reportSvc *report.Service, defaultCurrency string) chi.Router {
	accounts := NewAccountsHandler(ledgerSvc)
	transactions := NewTransactionsHandler(ledgerSvc)
	commodities := NewCommoditiesHandler(ledgerSvc)
	prices := NewPricesHandler(ledgerSvc)
	reports := NewReportsHandler(reportSvc, defaultCurrency)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/commodities", func(r chi.Router) {
			r.Get("/", commodities.List)
			r.Post("/", commodities.Create)
		})

		r.Route("/prices", func(r chi.Router) {
			r.Get("/", prices.List)
			r.Post("/", prices.Create)
			r.Get("/latest", prices.Latest)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accounts.List)
			r.Post("/", accounts.Create)
			r.Get("/{id}", accounts.Get)
			r.Patch("/{id}", accounts.Update)
			r.Delete("/{id}", accounts.Delete)
			r.Get("/{id}/balance", accounts.Balance)
			r.Get("/{id}/register", accounts.Register)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactions.List)
			r.Post("/", transactions.Create)
			r.Get("/{id}", transactions.Get)
			r.Patch("/{id}", transactions.Update)
			r.Delete("/{id}", transactions.Delete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/pnl", reports.PnL)
			r.Get("/balance-history", reports.BalanceHistory)
			r.Get("/net-worth", reports.NetWorth)
		})
	})

	// Health check endpoint.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
