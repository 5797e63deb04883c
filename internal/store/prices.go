package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mxbcash/mxbcash/internal/models"
)

// CreatePrice assigns an id to the price and persists it. Prices are
// append-only; there is no update or delete path.
func (s *Store) CreatePrice(p *models.Price) error {
	id, err := s.NextID(BucketPrices)
	if err != nil {
		return fmt.Errorf("failed to generate ID: %w", err)
	}
	p.ID = id

	if err := s.Put(BucketPrices, id, p); err != nil {
		return fmt.Errorf("failed to save price: %w", err)
	}
	return nil
}

// ListPrices retrieves all prices ordered by date descending, newest id
// first on equal dates.
func (s *Store) ListPrices() ([]*models.Price, error) {
	results, err := s.List(BucketPrices, nil)
	if err != nil {
		return nil, err
	}

	prices := make([]*models.Price, 0, len(results))
	for _, data := range results {
		var p models.Price
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal price: %w", err)
		}
		prices = append(prices, &p)
	}

	sortPricesNewestFirst(prices)
	return prices, nil
}

// FindLatestPrice retrieves the most recent price for the exact
// (commodity, currency) direction, with no date bound. Returns (nil, nil)
// when the pair has no price.
func (s *Store) FindLatestPrice(commodityID, currencyID int64) (*models.Price, error) {
	return s.findPrice(commodityID, currencyID, "")
}

// FindPriceAtOrBefore retrieves the most recent price dated at or before the
// given date for the exact (commodity, currency) direction. Returns
// (nil, nil) when no such price exists. Equal dates are broken by highest id.
func (s *Store) FindPriceAtOrBefore(commodityID, currencyID int64, date string) (*models.Price, error) {
	return s.findPrice(commodityID, currencyID, date)
}

func (s *Store) findPrice(commodityID, currencyID int64, maxDate string) (*models.Price, error) {
	prices, err := s.ListPrices()
	if err != nil {
		return nil, err
	}

	for _, p := range prices {
		if p.CommodityID != commodityID || p.CurrencyID != currencyID {
			continue
		}
		if maxDate != "" && p.Date > maxDate {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func sortPricesNewestFirst(prices []*models.Price) {
	sort.Slice(prices, func(i, j int) bool {
		if prices[i].Date != prices[j].Date {
			return prices[i].Date > prices[j].Date
		}
		return prices[i].ID > prices[j].ID
	})
}
