package report

import (
	"github.com/shopspring/decimal"

	"github.com/mxbcash/mxbcash/internal/models"
)

type priceKey struct {
	commodityID int64
	currencyID  int64
	date        string
}

// converter applies historical exchange rates with a per-report lookup
// cache. The cache lives for one report computation and is never persisted.
type converter struct {
	store Store
	cache map[priceKey]*models.Price
	seen  map[priceKey]bool
}

func newConverter(st Store) *converter {
	return &converter{
		store: st,
		cache: make(map[priceKey]*models.Price),
		seen:  make(map[priceKey]bool),
	}
}

// convert translates quantity minor units of the from commodity into the to
// commodity as of the given date. The lookup chain is: identity, direct price
// at-or-before the date, inverted reverse price, and finally a 1:1 fallback.
// The fallback is deliberate: reports silently mix currencies when price data
// is missing rather than failing.
func (c *converter) convert(quantityMinor, fromID, toID int64, asOfDate string) (int64, error) {
	if fromID == toID {
		return quantityMinor, nil
	}

	price, err := c.lookup(fromID, toID, asOfDate)
	if err != nil {
		return 0, err
	}
	if price != nil {
		return applyRate(quantityMinor, price.Numerator, price.Denominator), nil
	}

	reverse, err := c.lookup(toID, fromID, asOfDate)
	if err != nil {
		return 0, err
	}
	if reverse != nil {
		return applyRate(quantityMinor, reverse.Denominator, reverse.Numerator), nil
	}

	return quantityMinor, nil
}

func (c *converter) lookup(commodityID, currencyID int64, date string) (*models.Price, error) {
	key := priceKey{commodityID: commodityID, currencyID: currencyID, date: date}
	if c.seen[key] {
		return c.cache[key], nil
	}

	price, err := c.store.FindPriceAtOrBefore(commodityID, currencyID, date)
	if err != nil {
		return nil, err
	}
	c.cache[key] = price
	c.seen[key] = true
	return price, nil
}

// applyRate computes quantity * numerator / denominator exactly and rounds
// half to even, so results are identical on every platform.
func applyRate(quantityMinor, numerator, denominator int64) int64 {
	product := decimal.NewFromInt(quantityMinor).Mul(decimal.NewFromInt(numerator))
	return product.Div(decimal.NewFromInt(denominator)).RoundBank(0).IntPart()
}
