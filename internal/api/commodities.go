package api

import (
	"encoding/json"
	"net/http"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
)

// CommoditiesHandler handles commodity-related API endpoints.
type CommoditiesHandler struct {
	ledger *ledger.Service
}

// NewCommoditiesHandler creates a new CommoditiesHandler.
func NewCommoditiesHandler(l *ledger.Service) *CommoditiesHandler {
	return &CommoditiesHandler{ledger: l}
}

// List handles GET /api/v1/commodities.
func (h *CommoditiesHandler) List(w http.ResponseWriter, r *http.Request) {
	commodities, err := h.ledger.ListCommodities()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commodities)
}

// Create handles POST /api/v1/commodities.
func (h *CommoditiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommodityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	commodity, err := h.ledger.CreateCommodity(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commodity)
}
