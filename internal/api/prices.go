package api

import (
	"encoding/json"
	"net/http"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
)

// PricesHandler handles price-related API endpoints.
type PricesHandler struct {
	ledger *ledger.Service
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(l *ledger.Service) *PricesHandler {
	return &PricesHandler{ledger: l}
}

// List handles GET /api/v1/prices.
func (h *PricesHandler) List(w http.ResponseWriter, r *http.Request) {
	prices, err := h.ledger.ListPrices()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

// Create handles POST /api/v1/prices.
func (h *PricesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	price, err := h.ledger.CreatePrice(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, price)
}

// Latest handles GET /api/v1/prices/latest?from=EUR&to=USD. The response is
// null when either mnemonic is unknown or the pair has no recorded price.
func (h *PricesHandler) Latest(w http.ResponseWriter, r *http.Request) {
	from, err := h.ledger.FindCommodityByMnemonic(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := h.ledger.FindCommodityByMnemonic(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}
	if from == nil || to == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	price, err := h.ledger.LatestPrice(from.ID, to.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}
