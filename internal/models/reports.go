package models

// PnLRow is one (account, period) bucket of a profit-and-loss report,
// converted into the reporting currency.
type PnLRow struct {
	AccountID         int64       `json:"account_id"`
	AccountName       string      `json:"account_name"`
	AccountType       AccountType `json:"account_type"`
	Period            string      `json:"period"` // bucket-start date, e.g. "2024-01-01"
	AmountMinor       int64       `json:"amount_minor"`
	ReportingCurrency string      `json:"reporting_currency"`
}

// PnLReport is a profit-and-loss report over a date range.
type PnLReport struct {
	Rows              []PnLRow `json:"rows"`
	ReportingCurrency string   `json:"reporting_currency"`
	FromDate          string   `json:"from_date"`
	ToDate            string   `json:"to_date"`
}

// BalancePoint is the running balance of an account at the end of one period,
// converted into the reporting currency.
type BalancePoint struct {
	Period            string `json:"period"`
	BalanceMinor      int64  `json:"balance_minor"`
	ReportingCurrency string `json:"reporting_currency"`
}

// BalanceHistory is the bucketed balance evolution of one account.
type BalanceHistory struct {
	AccountID         int64          `json:"account_id"`
	AccountName       string         `json:"account_name"`
	Points            []BalancePoint `json:"points"`
	ReportingCurrency string         `json:"reporting_currency"`
}

// NetWorthSnapshot sums all asset and liability balances as of today.
// Liabilities carry negative balances by convention, so NetWorthMinor is a
// signed sum, not a subtraction.
type NetWorthSnapshot struct {
	AssetsMinor       int64  `json:"assets_minor"`
	LiabilitiesMinor  int64  `json:"liabilities_minor"`
	NetWorthMinor     int64  `json:"net_worth_minor"`
	ReportingCurrency string `json:"reporting_currency"`
}
