package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/store"
)

// fixture wires a real store behind both the ledger and the reporting
// services so reports run against booked data.
type fixture struct {
	store   *store.Store
	ledger  *ledger.Service
	reports *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "report-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	return &fixture{
		store:   st,
		ledger:  ledger.NewService(st),
		reports: NewService(st),
	}
}

func (f *fixture) commodity(t *testing.T, mnemonic string) *models.Commodity {
	t.Helper()

	c, err := f.ledger.CreateCommodity(models.CreateCommodityRequest{
		Mnemonic: mnemonic,
		Name:     mnemonic,
		Fraction: 100,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) account(t *testing.T, name string, typ models.AccountType, commodityID int64) *models.Account {
	t.Helper()

	a, err := f.ledger.CreateAccount(models.CreateAccountRequest{
		Name:        name,
		AccountType: typ,
		CommodityID: commodityID,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) transfer(t *testing.T, date string, currencyID, fromID, toID, amount int64) {
	t.Helper()

	_, err := f.ledger.CreateTransaction(models.CreateTransactionRequest{
		Date:        date,
		Description: "transfer",
		CurrencyID:  currencyID,
		Splits: []models.CreateSplitRequest{
			{AccountID: fromID, ValueMinor: -amount, QuantityMinor: -amount},
			{AccountID: toID, ValueMinor: amount, QuantityMinor: amount},
		},
	})
	require.NoError(t, err)
}

func TestPnLGroupsByAccountAndPeriod(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	checking := f.account(t, "Checking", models.AccountTypeAsset, usd.ID)
	salary := f.account(t, "Salary", models.AccountTypeIncome, usd.ID)
	groceries := f.account(t, "Groceries", models.AccountTypeExpense, usd.ID)

	f.transfer(t, "2024-01-15", usd.ID, salary.ID, checking.ID, 300000)
	f.transfer(t, "2024-01-05", usd.ID, checking.ID, groceries.ID, 12000)
	f.transfer(t, "2024-01-25", usd.ID, checking.ID, groceries.ID, 8000)
	f.transfer(t, "2024-02-10", usd.ID, checking.ID, groceries.ID, 9000)

	got, err := f.reports.PnL("2024-01-01", "2024-12-31", "month", "USD")
	require.NoError(t, err)
	require.Len(t, got.Rows, 3)

	// Rows come out sorted by account full name, then period. Income shows
	// negative, expenses positive, both untouched by sign convention.
	assert.Equal(t, models.PnLRow{
		AccountID:         groceries.ID,
		AccountName:       "Groceries",
		AccountType:       models.AccountTypeExpense,
		Period:            "2024-01-01",
		AmountMinor:       20000,
		ReportingCurrency: "USD",
	}, got.Rows[0])
	assert.Equal(t, "2024-02-01", got.Rows[1].Period)
	assert.Equal(t, int64(9000), got.Rows[1].AmountMinor)
	assert.Equal(t, models.PnLRow{
		AccountID:         salary.ID,
		AccountName:       "Salary",
		AccountType:       models.AccountTypeIncome,
		Period:            "2024-01-01",
		AmountMinor:       -300000,
		ReportingCurrency: "USD",
	}, got.Rows[2])

	assert.Equal(t, "2024-01-01", got.FromDate)
	assert.Equal(t, "USD", got.ReportingCurrency)
}

func TestPnLGroupByYearAndDay(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	checking := f.account(t, "Checking", models.AccountTypeAsset, usd.ID)
	groceries := f.account(t, "Groceries", models.AccountTypeExpense, usd.ID)

	f.transfer(t, "2024-03-15", usd.ID, checking.ID, groceries.ID, 100)
	f.transfer(t, "2024-09-20", usd.ID, checking.ID, groceries.ID, 200)

	got, err := f.reports.PnL("2024-01-01", "2024-12-31", "year", "USD")
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "2024-01-01", got.Rows[0].Period)
	assert.Equal(t, int64(300), got.Rows[0].AmountMinor)

	got, err = f.reports.PnL("2024-01-01", "2024-12-31", "day", "USD")
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "2024-03-15", got.Rows[0].Period)
}

func TestPnLConvertsAtPeriodDate(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	eur := f.commodity(t, "EUR")
	checking := f.account(t, "Checking", models.AccountTypeAsset, eur.ID)
	groceries := f.account(t, "Groceries", models.AccountTypeExpense, eur.ID)

	// The rate in force on the period start (Feb 1) counts, not the rate on
	// the transaction date (Feb 15).
	_, err := f.ledger.CreatePrice(models.CreatePriceRequest{
		Date: "2024-02-01", CommodityID: eur.ID, CurrencyID: usd.ID, Numerator: 110, Denominator: 100,
	})
	require.NoError(t, err)
	_, err = f.ledger.CreatePrice(models.CreatePriceRequest{
		Date: "2024-02-10", CommodityID: eur.ID, CurrencyID: usd.ID, Numerator: 200, Denominator: 100,
	})
	require.NoError(t, err)

	f.transfer(t, "2024-02-15", eur.ID, checking.ID, groceries.ID, 10000)

	got, err := f.reports.PnL("2024-01-01", "2024-12-31", "month", "USD")
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, int64(11000), got.Rows[0].AmountMinor)
}

func TestPnLExcludesOutOfRangeAndNonFlowAccounts(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	checking := f.account(t, "Checking", models.AccountTypeAsset, usd.ID)
	savings := f.account(t, "Savings", models.AccountTypeAsset, usd.ID)
	groceries := f.account(t, "Groceries", models.AccountTypeExpense, usd.ID)

	f.transfer(t, "2023-12-31", usd.ID, checking.ID, groceries.ID, 100)
	f.transfer(t, "2024-01-15", usd.ID, checking.ID, savings.ID, 5000)

	got, err := f.reports.PnL("2024-01-01", "2024-12-31", "month", "USD")
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
}

func TestPnLValidation(t *testing.T) {
	f := newFixture(t)
	f.commodity(t, "USD")

	var validation *ledger.ValidationError

	_, err := f.reports.PnL("not-a-date", "2024-12-31", "month", "USD")
	require.ErrorAs(t, err, &validation)

	_, err = f.reports.PnL("2024-01-01", "2024-12-31", "week", "USD")
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Error(), "group_by")

	var configuration *ledger.ConfigurationError
	_, err = f.reports.PnL("2024-01-01", "2024-12-31", "month", "XXX")
	require.ErrorAs(t, err, &configuration)
	assert.Contains(t, configuration.Error(), "XXX")
}

func TestBalanceHistoryRunningTotals(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	checking := f.account(t, "Checking", models.AccountTypeAsset, usd.ID)
	salary := f.account(t, "Salary", models.AccountTypeIncome, usd.ID)
	groceries := f.account(t, "Groceries", models.AccountTypeExpense, usd.ID)

	// Opening balance before the window.
	f.transfer(t, "2023-12-20", usd.ID, salary.ID, checking.ID, 50000)
	// In-window activity.
	f.transfer(t, "2024-01-15", usd.ID, salary.ID, checking.ID, 300000)
	f.transfer(t, "2024-01-20", usd.ID, checking.ID, groceries.ID, 10000)
	f.transfer(t, "2024-02-10", usd.ID, checking.ID, groceries.ID, 20000)

	got, err := f.reports.BalanceHistory(checking.ID, "2024-01-01", "2024-12-31", "month", "USD")
	require.NoError(t, err)
	assert.Equal(t, checking.ID, got.AccountID)
	assert.Equal(t, "Checking", got.AccountName)
	require.Len(t, got.Points, 2)

	assert.Equal(t, models.BalancePoint{
		Period: "2024-01-01", BalanceMinor: 340000, ReportingCurrency: "USD",
	}, got.Points[0])
	assert.Equal(t, models.BalancePoint{
		Period: "2024-02-01", BalanceMinor: 320000, ReportingCurrency: "USD",
	}, got.Points[1])
}

func TestBalanceHistoryConvertsRunningTotal(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	eur := f.commodity(t, "EUR")
	checking := f.account(t, "Checking", models.AccountTypeAsset, eur.ID)
	salary := f.account(t, "Salary", models.AccountTypeIncome, eur.ID)

	_, err := f.ledger.CreatePrice(models.CreatePriceRequest{
		Date: "2024-01-01", CommodityID: eur.ID, CurrencyID: usd.ID, Numerator: 110, Denominator: 100,
	})
	require.NoError(t, err)
	_, err = f.ledger.CreatePrice(models.CreatePriceRequest{
		Date: "2024-02-01", CommodityID: eur.ID, CurrencyID: usd.ID, Numerator: 120, Denominator: 100,
	})
	require.NoError(t, err)

	f.transfer(t, "2024-01-15", eur.ID, salary.ID, checking.ID, 10000)
	f.transfer(t, "2024-02-15", eur.ID, salary.ID, checking.ID, 10000)

	got, err := f.reports.BalanceHistory(checking.ID, "2024-01-01", "2024-12-31", "month", "USD")
	require.NoError(t, err)
	require.Len(t, got.Points, 2)

	// January: 10000 EUR at 1.10. February: the full 20000 EUR running total
	// revalued at 1.20, not January's converted value plus the delta.
	assert.Equal(t, int64(11000), got.Points[0].BalanceMinor)
	assert.Equal(t, int64(24000), got.Points[1].BalanceMinor)
}

func TestBalanceHistoryUnknownAccount(t *testing.T) {
	f := newFixture(t)
	f.commodity(t, "USD")

	var notFound *ledger.NotFoundError
	_, err := f.reports.BalanceHistory(999, "2024-01-01", "2024-12-31", "month", "USD")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "account", notFound.Entity)
}

func TestNetWorthSignedSum(t *testing.T) {
	f := newFixture(t)
	usd := f.commodity(t, "USD")
	checking := f.account(t, "Checking", models.AccountTypeAsset, usd.ID)
	card := f.account(t, "Credit Card", models.AccountTypeLiability, usd.ID)
	salary := f.account(t, "Salary", models.AccountTypeIncome, usd.ID)
	groceries := f.account(t, "Groceries", models.AccountTypeExpense, usd.ID)

	f.transfer(t, "2024-01-15", usd.ID, salary.ID, checking.ID, 300000)
	// Spending on the card leaves the liability with a negative balance.
	f.transfer(t, "2024-01-20", usd.ID, card.ID, groceries.ID, 40000)

	got, err := f.reports.NetWorth("USD")
	require.NoError(t, err)
	assert.Equal(t, int64(300000), got.AssetsMinor)
	assert.Equal(t, int64(-40000), got.LiabilitiesMinor)
	assert.Equal(t, int64(260000), got.NetWorthMinor)
	assert.Equal(t, "USD", got.ReportingCurrency)
}

func TestNetWorthUnknownReportingCurrency(t *testing.T) {
	f := newFixture(t)

	var configuration *ledger.ConfigurationError
	_, err := f.reports.NetWorth("USD")
	require.ErrorAs(t, err, &configuration)
}

func TestTruncatePeriod(t *testing.T) {
	assert.Equal(t, "2024-03-15", truncatePeriod("2024-03-15", "day"))
	assert.Equal(t, "2024-03-01", truncatePeriod("2024-03-15", "month"))
	assert.Equal(t, "2024-01-01", truncatePeriod("2024-03-15", "year"))
}
