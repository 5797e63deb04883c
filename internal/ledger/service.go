// Package ledger implements the bookkeeping core: the account tree manager,
// the balanced-transaction engine, and the price store. It consumes a
// persistence collaborator and returns plain data results; transport concerns
// live elsewhere.
package ledger

import (
	"time"

	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/store"
)

// Store is the persistence collaborator the ledger core operates against.
// *store.Store satisfies it.
type Store interface {
	CreateCommodity(c *models.Commodity) error
	GetCommodity(id int64) (*models.Commodity, error)
	FindCommodityByMnemonic(mnemonic string) (*models.Commodity, error)
	ListCommodities() ([]*models.Commodity, error)

	CreateAccount(a *models.Account) error
	GetAccount(id int64) (*models.Account, error)
	PutAccounts(accounts []*models.Account) error
	DeleteAccount(id int64) error
	ListAccounts() ([]*models.Account, error)

	CreateTransaction(t *models.Transaction) error
	GetTransaction(id int64) (*models.Transaction, error)
	PutTransaction(t *models.Transaction) error
	DeleteTransaction(id int64) error
	ListTransactions(accountID *int64, fromDate, toDate string, limit, offset int) ([]*models.Transaction, error)
	FindTransactionByImportRef(ref string) (*models.Transaction, error)
	SplitsByAccount(accountID int64) ([]store.AccountSplit, error)
	SumQuantityByAccount(accountID int64, beforeDate string) (int64, error)
	HasSplits(accountID int64) (bool, error)

	CreatePrice(p *models.Price) error
	ListPrices() ([]*models.Price, error)
	FindLatestPrice(commodityID, currencyID int64) (*models.Price, error)
}

// Service implements the ledger operations on top of a Store.
type Service struct {
	store Store
}

// NewService creates a new ledger Service.
func NewService(st Store) *Service {
	return &Service{store: st}
}

const dateLayout = "2006-01-02"

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return validationf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}
