// Package report derives profit-and-loss, balance-history and net-worth
// reports from the ledger, converting amounts into a reporting currency
// through the historical price store.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/store"
)

// Store is the persistence collaborator the reporting engine reads from.
// *store.Store satisfies it.
type Store interface {
	FindCommodityByMnemonic(mnemonic string) (*models.Commodity, error)
	GetAccount(id int64) (*models.Account, error)
	ListAccounts() ([]*models.Account, error)
	AllTransactions() ([]*models.Transaction, error)
	SumQuantityByAccount(accountID int64, beforeDate string) (int64, error)
	FindPriceAtOrBefore(commodityID, currencyID int64, date string) (*models.Price, error)
}

// Service implements the reporting operations on top of a Store.
type Service struct {
	store Store
}

// NewService creates a new reporting Service.
func NewService(st Store) *Service {
	return &Service{store: st}
}

const dateLayout = "2006-01-02"

// PnL buckets every split on income and expense accounts within the date
// range by (account, period), sums quantities per bucket, and converts each
// bucket sum as of the bucket's period start date. Converting at the period
// start rather than per transaction is a deliberate approximation carried
// over from the report consumers.
func (s *Service) PnL(fromDate, toDate, groupBy, reportingCurrency string) (*models.PnLReport, error) {
	if err := validateRange(fromDate, toDate); err != nil {
		return nil, err
	}
	if err := validateGroupBy(groupBy); err != nil {
		return nil, err
	}
	rc, err := s.reportingCommodity(reportingCurrency)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountsByID()
	if err != nil {
		return nil, err
	}
	txns, err := s.store.AllTransactions()
	if err != nil {
		return nil, err
	}

	type bucket struct {
		accountID int64
		period    string
	}
	sums := make(map[bucket]int64)
	for _, txn := range txns {
		if txn.Date < fromDate || txn.Date > toDate {
			continue
		}
		period := truncatePeriod(txn.Date, groupBy)
		for _, sp := range txn.Splits {
			account, ok := accounts[sp.AccountID]
			if !ok {
				continue
			}
			if account.AccountType != models.AccountTypeIncome && account.AccountType != models.AccountTypeExpense {
				continue
			}
			sums[bucket{accountID: sp.AccountID, period: period}] += sp.QuantityMinor
		}
	}

	buckets := make([]bucket, 0, len(sums))
	for b := range sums {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		ni, nj := accounts[buckets[i].accountID].FullName, accounts[buckets[j].accountID].FullName
		if ni != nj {
			return ni < nj
		}
		return buckets[i].period < buckets[j].period
	})

	conv := newConverter(s.store)
	rows := make([]models.PnLRow, 0, len(buckets))
	for _, b := range buckets {
		account := accounts[b.accountID]
		amount, err := conv.convert(sums[b], account.CommodityID, rc.ID, b.period)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.PnLRow{
			AccountID:         account.ID,
			AccountName:       account.FullName,
			AccountType:       account.AccountType,
			Period:            b.period,
			AmountMinor:       amount,
			ReportingCurrency: reportingCurrency,
		})
	}

	return &models.PnLReport{
		Rows:              rows,
		ReportingCurrency: reportingCurrency,
		FromDate:          fromDate,
		ToDate:            toDate,
	}, nil
}

// BalanceHistory computes an opening balance strictly before fromDate, then
// walks period buckets in ascending order accumulating deltas, converting the
// running total (not the delta) at each bucket's period start.
func (s *Service) BalanceHistory(accountID int64, fromDate, toDate, groupBy, reportingCurrency string) (*models.BalanceHistory, error) {
	if err := validateRange(fromDate, toDate); err != nil {
		return nil, err
	}
	if err := validateGroupBy(groupBy); err != nil {
		return nil, err
	}
	rc, err := s.reportingCommodity(reportingCurrency)
	if err != nil {
		return nil, err
	}

	account, err := s.store.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ledger.NotFoundError{Entity: "account", ID: accountID}
		}
		return nil, err
	}

	opening, err := s.store.SumQuantityByAccount(accountID, fromDate)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.AllTransactions()
	if err != nil {
		return nil, err
	}
	deltas := make(map[string]int64)
	for _, txn := range txns {
		if txn.Date < fromDate || txn.Date > toDate {
			continue
		}
		period := truncatePeriod(txn.Date, groupBy)
		for _, sp := range txn.Splits {
			if sp.AccountID == accountID {
				deltas[period] += sp.QuantityMinor
			}
		}
	}

	periods := make([]string, 0, len(deltas))
	for p := range deltas {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	conv := newConverter(s.store)
	points := make([]models.BalancePoint, 0, len(periods))
	running := opening
	for _, period := range periods {
		running += deltas[period]
		balance, err := conv.convert(running, account.CommodityID, rc.ID, period)
		if err != nil {
			return nil, err
		}
		points = append(points, models.BalancePoint{
			Period:            period,
			BalanceMinor:      balance,
			ReportingCurrency: reportingCurrency,
		})
	}

	return &models.BalanceHistory{
		AccountID:         accountID,
		AccountName:       account.FullName,
		Points:            points,
		ReportingCurrency: reportingCurrency,
	}, nil
}

// NetWorth sums the all-time balances of every asset and liability account,
// converted as of today. Liabilities carry negative balances, so the net
// worth is a signed sum.
func (s *Service) NetWorth(reportingCurrency string) (*models.NetWorthSnapshot, error) {
	rc, err := s.reportingCommodity(reportingCurrency)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)
	conv := newConverter(s.store)

	var assets, liabilities int64
	for _, account := range accounts {
		if account.AccountType != models.AccountTypeAsset && account.AccountType != models.AccountTypeLiability {
			continue
		}
		balance, err := s.store.SumQuantityByAccount(account.ID, "")
		if err != nil {
			return nil, err
		}
		converted, err := conv.convert(balance, account.CommodityID, rc.ID, today)
		if err != nil {
			return nil, err
		}
		if account.AccountType == models.AccountTypeAsset {
			assets += converted
		} else {
			liabilities += converted
		}
	}

	return &models.NetWorthSnapshot{
		AssetsMinor:       assets,
		LiabilitiesMinor:  liabilities,
		NetWorthMinor:     assets + liabilities,
		ReportingCurrency: reportingCurrency,
	}, nil
}

func (s *Service) reportingCommodity(mnemonic string) (*models.Commodity, error) {
	c, err := s.store.FindCommodityByMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &ledger.ConfigurationError{Detail: fmt.Sprintf("unknown reporting currency: %s", mnemonic)}
	}
	return c, nil
}

func (s *Service) accountsByID() (map[int64]*models.Account, error) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID, nil
}

// truncatePeriod reduces a YYYY-MM-DD date to its bucket-start string. This
// is exact string truncation, not calendar-aware rounding.
func truncatePeriod(date, groupBy string) string {
	switch groupBy {
	case "month":
		return date[:7] + "-01"
	case "year":
		return date[:4] + "-01-01"
	default:
		return date
	}
}

func validateGroupBy(groupBy string) error {
	switch groupBy {
	case "day", "month", "year":
		return nil
	}
	return &ledger.ValidationError{Detail: fmt.Sprintf("invalid group_by %q: expected day, month or year", groupBy)}
}

func validateRange(fromDate, toDate string) error {
	for _, d := range []string{fromDate, toDate} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return &ledger.ValidationError{Detail: fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", d)}
		}
	}
	return nil
}
