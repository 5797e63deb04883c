package ledger_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/store"
)

func newTestLedger(t *testing.T) *ledger.Service {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "ledger-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	return ledger.NewService(st)
}

func mustCommodity(t *testing.T, svc *ledger.Service, mnemonic string, fraction int64) *models.Commodity {
	t.Helper()

	c, err := svc.CreateCommodity(models.CreateCommodityRequest{
		Mnemonic: mnemonic,
		Name:     mnemonic,
		Fraction: fraction,
	})
	require.NoError(t, err)
	return c
}

func mustAccount(t *testing.T, svc *ledger.Service, name string, typ models.AccountType, commodityID int64, parentID *int64) *models.Account {
	t.Helper()

	a, err := svc.CreateAccount(models.CreateAccountRequest{
		Name:        name,
		AccountType: typ,
		CommodityID: commodityID,
		ParentID:    parentID,
	})
	require.NoError(t, err)
	return a
}

// mustTransfer books amount from one account into another on the given date.
func mustTransfer(t *testing.T, svc *ledger.Service, date string, currencyID, fromID, toID, amount int64) *models.Transaction {
	t.Helper()

	txn, err := svc.CreateTransaction(models.CreateTransactionRequest{
		Date:        date,
		Description: "transfer",
		CurrencyID:  currencyID,
		Splits: []models.CreateSplitRequest{
			{AccountID: fromID, ValueMinor: -amount, QuantityMinor: -amount},
			{AccountID: toID, ValueMinor: amount, QuantityMinor: amount},
		},
	})
	require.NoError(t, err)
	return txn
}

func ptr[T any](v T) *T {
	return &v
}
