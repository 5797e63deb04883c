package api

import (
	"encoding/json"
	"net/http"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
)

// AccountsHandler handles account-related API endpoints.
type AccountsHandler struct {
	ledger *ledger.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(l *ledger.Service) *AccountsHandler {
	return &AccountsHandler{ledger: l}
}

// List handles GET /api/v1/accounts.
// @Summary List accounts
// @Description Get all accounts ordered by full name, or as a tree with ?tree=true
// @Tags accounts
// @Produce json
// @Param tree query bool false "Return accounts grouped into a tree"
// @Success 200 {array} models.Account
// @Router /accounts [get]
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledger.ListAccounts()
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("tree") == "true" {
		writeJSON(w, http.StatusOK, ledger.BuildTree(accounts))
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Create handles POST /api/v1/accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	account, err := h.ledger.CreateAccount(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// Get handles GET /api/v1/accounts/{id}.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account ID")
		return
	}

	account, err := h.ledger.GetAccount(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Update handles PATCH /api/v1/accounts/{id}.
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account ID")
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	account, err := h.ledger.UpdateAccount(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Delete handles DELETE /api/v1/accounts/{id}.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account ID")
		return
	}

	if err := h.ledger.DeleteAccount(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Balance handles GET /api/v1/accounts/{id}/balance.
func (h *AccountsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account ID")
		return
	}

	balance, err := h.ledger.Balance(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Register handles GET /api/v1/accounts/{id}/register.
func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid account ID")
		return
	}

	limit, offset := pageParams(r)
	entries, err := h.ledger.Register(id, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
