package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mxbcash/mxbcash/internal/models"
)

// CreateCommodity assigns an id to the commodity and persists it.
func (s *Store) CreateCommodity(c *models.Commodity) error {
	id, err := s.NextID(BucketCommodities)
	if err != nil {
		return fmt.Errorf("failed to generate ID: %w", err)
	}
	c.ID = id

	if err := s.Put(BucketCommodities, id, c); err != nil {
		return fmt.Errorf("failed to save commodity: %w", err)
	}
	return nil
}

// GetCommodity retrieves a commodity by ID.
func (s *Store) GetCommodity(id int64) (*models.Commodity, error) {
	var c models.Commodity
	if err := s.Get(BucketCommodities, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCommodityByMnemonic retrieves a commodity by its mnemonic. Returns
// (nil, nil) when no commodity carries the mnemonic.
func (s *Store) FindCommodityByMnemonic(mnemonic string) (*models.Commodity, error) {
	commodities, err := s.ListCommodities()
	if err != nil {
		return nil, err
	}
	for _, c := range commodities {
		if c.Mnemonic == mnemonic {
			return c, nil
		}
	}
	return nil, nil
}

// ListCommodities retrieves all commodities ordered by mnemonic.
func (s *Store) ListCommodities() ([]*models.Commodity, error) {
	results, err := s.List(BucketCommodities, nil)
	if err != nil {
		return nil, err
	}

	commodities := make([]*models.Commodity, 0, len(results))
	for _, data := range results {
		var c models.Commodity
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal commodity: %w", err)
		}
		commodities = append(commodities, &c)
	}

	sort.Slice(commodities, func(i, j int) bool {
		return commodities[i].Mnemonic < commodities[j].Mnemonic
	})
	return commodities, nil
}
