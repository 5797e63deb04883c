package models

// Price represents an exchange-rate observation: 1 unit of commodity =
// numerator/denominator units of currency as of date. Prices are append-only;
// the latest price at-or-before a given date is authoritative.
type Price struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	CommodityID int64  `json:"commodity_id"`
	CurrencyID  int64  `json:"currency_id"`
	Numerator   int64  `json:"numerator"`
	Denominator int64  `json:"denominator"`
	Source      string `json:"source"`
}

// CreatePriceRequest represents the request to record a price.
type CreatePriceRequest struct {
	Date        string `json:"date"`
	CommodityID int64  `json:"commodity_id"`
	CurrencyID  int64  `json:"currency_id"`
	Numerator   int64  `json:"numerator"`
	Denominator int64  `json:"denominator,omitempty"`
	Source      string `json:"source,omitempty"`
}
