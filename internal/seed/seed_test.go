package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/seed"
	"github.com/mxbcash/mxbcash/internal/store"
)

func newSeedFixture(t *testing.T) (*store.Store, *ledger.Service) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "seed-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st, ledger.NewService(st)
}

func fullNames(t *testing.T, svc *ledger.Service) map[string]*models.Account {
	t.Helper()

	accounts, err := svc.ListAccounts()
	require.NoError(t, err)
	byName := make(map[string]*models.Account, len(accounts))
	for _, a := range accounts {
		byName[a.FullName] = a
	}
	return byName
}

func TestRunSeedsDefaults(t *testing.T) {
	st, svc := newSeedFixture(t)

	require.NoError(t, seed.Run(st, svc, ""))

	commodities, err := svc.ListCommodities()
	require.NoError(t, err)
	require.Len(t, commodities, 8)

	usd, err := svc.FindCommodityByMnemonic("USD")
	require.NoError(t, err)
	require.NotNil(t, usd)
	assert.Equal(t, int64(100), usd.Fraction)

	jpy, err := svc.FindCommodityByMnemonic("JPY")
	require.NoError(t, err)
	require.NotNil(t, jpy)
	assert.Equal(t, int64(1), jpy.Fraction)

	byName := fullNames(t, svc)
	for _, want := range []string{
		"Assets",
		"Assets:Current Assets:Checking",
		"Assets:Current Assets:Savings",
		"Liabilities:Credit Cards",
		"Equity:Opening Balance",
		"Income:Salary",
		"Expenses:Food:Groceries",
		"Expenses:Housing:Rent",
		"Expenses:Transportation:Public Transit",
	} {
		require.Contains(t, byName, want)
	}

	// Parents are placeholders, leaves are postable.
	assert.True(t, byName["Assets"].Placeholder)
	assert.True(t, byName["Expenses:Food"].Placeholder)
	assert.False(t, byName["Expenses:Food:Groceries"].Placeholder)

	// Children inherit the parent's account type.
	assert.Equal(t, models.AccountTypeExpense, byName["Expenses:Food:Groceries"].AccountType)
	assert.Equal(t, models.AccountTypeAsset, byName["Assets:Current Assets:Checking"].AccountType)
	assert.Equal(t, usd.ID, byName["Assets:Current Assets:Checking"].CommodityID)
}

func TestRunIsIdempotent(t *testing.T) {
	st, svc := newSeedFixture(t)

	require.NoError(t, seed.Run(st, svc, ""))
	first, err := st.CountAccounts()
	require.NoError(t, err)

	require.NoError(t, seed.Run(st, svc, ""))
	second, err := st.CountAccounts()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunSkipsNonEmptyDatabase(t *testing.T) {
	st, svc := newSeedFixture(t)

	usd, err := svc.CreateCommodity(models.CreateCommodityRequest{Mnemonic: "USD", Name: "US Dollar", Fraction: 100})
	require.NoError(t, err)
	_, err = svc.CreateAccount(models.CreateAccountRequest{
		Name:        "Checking",
		AccountType: models.AccountTypeAsset,
		CommodityID: usd.ID,
	})
	require.NoError(t, err)

	require.NoError(t, seed.Run(st, svc, ""))

	count, err := st.CountAccounts()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	commodities, err := svc.ListCommodities()
	require.NoError(t, err)
	assert.Len(t, commodities, 1)
}

func TestRunWithCustomChart(t *testing.T) {
	st, svc := newSeedFixture(t)

	chart := `
- name: Assets
  type: ASSET
  placeholder: true
  children:
    - name: Wallet
      commodity: EUR
- name: Expenses
  type: EXPENSE
  placeholder: true
  children:
    - name: Coffee
      description: espresso habit
`
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chart), 0o600))

	require.NoError(t, seed.Run(st, svc, path))

	byName := fullNames(t, svc)
	require.Len(t, byName, 4)

	eur, err := svc.FindCommodityByMnemonic("EUR")
	require.NoError(t, err)
	require.NotNil(t, eur)

	wallet := byName["Assets:Wallet"]
	require.NotNil(t, wallet)
	assert.Equal(t, models.AccountTypeAsset, wallet.AccountType)
	assert.Equal(t, eur.ID, wallet.CommodityID)

	coffee := byName["Expenses:Coffee"]
	require.NotNil(t, coffee)
	assert.Equal(t, "espresso habit", coffee.Description)
	assert.False(t, coffee.Placeholder)
}

func TestRunRejectsUnknownChartCommodity(t *testing.T) {
	st, svc := newSeedFixture(t)

	chart := `
- name: Assets
  type: ASSET
  children:
    - name: Wallet
      commodity: DOGE
`
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chart), 0o600))

	err := seed.Run(st, svc, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOGE")
}

func TestLoadChartErrors(t *testing.T) {
	_, err := seed.LoadChart(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))
	_, err = seed.LoadChart(path)
	require.Error(t, err)
}
