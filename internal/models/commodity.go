package models

// Commodity represents a currency or tradable unit.
type Commodity struct {
	ID       int64  `json:"id"`
	Mnemonic string `json:"mnemonic"` // unique, e.g. "USD"
	Name     string `json:"name"`
	Fraction int64  `json:"fraction"` // minor units per major unit, e.g. 100 for cents
}

// CreateCommodityRequest represents the request to create a commodity.
type CreateCommodityRequest struct {
	Mnemonic string `json:"mnemonic"`
	Name     string `json:"name"`
	Fraction int64  `json:"fraction,omitempty"`
}
