package api

import (
	"net/http"
	"strconv"

	"github.com/mxbcash/mxbcash/internal/report"
)

// ReportsHandler handles report-related API endpoints.
type ReportsHandler struct {
	reports         *report.Service
	defaultCurrency string
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(r *report.Service, defaultCurrency string) *ReportsHandler {
	return &ReportsHandler{reports: r, defaultCurrency: defaultCurrency}
}

func (h *ReportsHandler) reportingCurrency(r *http.Request) string {
	if c := r.URL.Query().Get("reporting_currency"); c != "" {
		return c
	}
	return h.defaultCurrency
}

func groupBy(r *http.Request) string {
	if g := r.URL.Query().Get("group_by"); g != "" {
		return g
	}
	return "month"
}

// PnL handles GET /api/v1/reports/pnl.
// @Summary Profit and loss
// @Description Income/expense bucket sums converted into the reporting currency
// @Tags reports
// @Produce json
// @Param from_date query string true "Inclusive lower date bound (YYYY-MM-DD)"
// @Param to_date query string true "Inclusive upper date bound (YYYY-MM-DD)"
// @Param group_by query string false "day, month or year (default month)"
// @Param reporting_currency query string false "Reporting currency mnemonic"
// @Success 200 {object} models.PnLReport
// @Router /reports/pnl [get]
func (h *ReportsHandler) PnL(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.PnL(
		r.URL.Query().Get("from_date"),
		r.URL.Query().Get("to_date"),
		groupBy(r),
		h.reportingCurrency(r),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// BalanceHistory handles GET /api/v1/reports/balance-history.
func (h *ReportsHandler) BalanceHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account_id")
		return
	}

	result, err := h.reports.BalanceHistory(
		accountID,
		r.URL.Query().Get("from_date"),
		r.URL.Query().Get("to_date"),
		groupBy(r),
		h.reportingCurrency(r),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// NetWorth handles GET /api/v1/reports/net-worth.
func (h *ReportsHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.NetWorth(h.reportingCurrency(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
