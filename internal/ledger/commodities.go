package ledger

import (
	"strings"

	"github.com/mxbcash/mxbcash/internal/models"
)

// CreateCommodity creates a currency or tradable unit. Mnemonics are unique.
// There is no delete path: a commodity is effectively immutable once
// transactions or prices reference it.
func (s *Service) CreateCommodity(req models.CreateCommodityRequest) (*models.Commodity, error) {
	mnemonic := strings.TrimSpace(req.Mnemonic)
	if mnemonic == "" {
		return nil, validationf("commodity mnemonic must not be empty")
	}

	fraction := req.Fraction
	if fraction == 0 {
		fraction = 100
	}
	if fraction < 0 {
		return nil, validationf("commodity fraction must be positive, got %d", fraction)
	}

	existing, err := s.store.FindCommodityByMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("commodity %q already exists", mnemonic)
	}

	c := &models.Commodity{
		Mnemonic: mnemonic,
		Name:     req.Name,
		Fraction: fraction,
	}
	if err := s.store.CreateCommodity(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCommodity retrieves a commodity by id.
func (s *Service) GetCommodity(id int64) (*models.Commodity, error) {
	c, err := s.store.GetCommodity(id)
	if err != nil {
		return nil, asNotFound(err, "commodity", id)
	}
	return c, nil
}

// FindCommodityByMnemonic retrieves a commodity by mnemonic, (nil, nil) when
// absent.
func (s *Service) FindCommodityByMnemonic(mnemonic string) (*models.Commodity, error) {
	return s.store.FindCommodityByMnemonic(mnemonic)
}

// ListCommodities retrieves all commodities ordered by mnemonic.
func (s *Service) ListCommodities() ([]*models.Commodity, error) {
	return s.store.ListCommodities()
}
