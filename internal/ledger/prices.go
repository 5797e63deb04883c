package ledger

import (
	"github.com/mxbcash/mxbcash/internal/models"
)

// CreatePrice records an exchange-rate observation. Multiple prices per
// (commodity, currency, date) are allowed; lookups break ties towards the
// highest id. The denominator defaults to 1. Both sides of the rate must be
// positive: the reporting engine inverts stored rates, so a zero numerator
// would divide by zero on the reverse direction.
func (s *Service) CreatePrice(req models.CreatePriceRequest) (*models.Price, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	if req.Numerator <= 0 {
		return nil, validationf("price numerator must be positive, got %d", req.Numerator)
	}

	denominator := req.Denominator
	if denominator == 0 {
		denominator = 1
	}
	if denominator < 0 {
		return nil, validationf("price denominator must be positive, got %d", denominator)
	}

	if _, err := s.store.GetCommodity(req.CommodityID); err != nil {
		return nil, asNotFound(err, "commodity", req.CommodityID)
	}
	if _, err := s.store.GetCommodity(req.CurrencyID); err != nil {
		return nil, asNotFound(err, "commodity", req.CurrencyID)
	}

	source := req.Source
	if source == "" {
		source = "user"
	}

	p := &models.Price{
		Date:        req.Date,
		CommodityID: req.CommodityID,
		CurrencyID:  req.CurrencyID,
		Numerator:   req.Numerator,
		Denominator: denominator,
		Source:      source,
	}
	if err := s.store.CreatePrice(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPrices retrieves all prices, newest first.
func (s *Service) ListPrices() ([]*models.Price, error) {
	return s.store.ListPrices()
}

// LatestPrice retrieves the most recent price for the exact
// (commodity, currency) direction, (nil, nil) when the pair has none.
func (s *Service) LatestPrice(commodityID, currencyID int64) (*models.Price, error) {
	return s.store.FindLatestPrice(commodityID, currencyID)
}
