package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
)

// TransactionsHandler handles transaction-related API endpoints.
type TransactionsHandler struct {
	ledger *ledger.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(l *ledger.Service) *TransactionsHandler {
	return &TransactionsHandler{ledger: l}
}

// List handles GET /api/v1/transactions.
// @Summary List transactions
// @Description Get transactions filtered by account and date range, newest first
// @Tags transactions
// @Produce json
// @Param account_id query int false "Only transactions with a split on this account"
// @Param from_date query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param to_date query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {array} models.Transaction
// @Router /transactions [get]
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var accountID *int64
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account_id")
			return
		}
		accountID = &id
	}

	limit, offset := pageParams(r)
	txns, err := h.ledger.ListTransactions(
		accountID,
		r.URL.Query().Get("from_date"),
		r.URL.Query().Get("to_date"),
		limit, offset,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// Create handles POST /api/v1/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	txn, err := h.ledger.CreateTransaction(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

// Get handles GET /api/v1/transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid transaction ID")
		return
	}

	txn, err := h.ledger.GetTransaction(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

// Update handles PATCH /api/v1/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid transaction ID")
		return
	}

	var req models.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	txn, err := h.ledger.UpdateTransaction(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

// Delete handles DELETE /api/v1/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid transaction ID")
		return
	}

	if err := h.ledger.DeleteTransaction(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
