package models

// AccountType classifies an account node.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// Account represents a node in the account tree. FullName is the colon-joined
// ancestor path from root to self and is kept consistent on every rename or
// re-parenting of the subtree.
type Account struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	FullName    string      `json:"full_name"`
	AccountType AccountType `json:"account_type"`
	Description string      `json:"description"`
	Placeholder bool        `json:"placeholder"`
	CommodityID int64       `json:"commodity_id"`
	ParentID    *int64      `json:"parent_id,omitempty"`
}

// CreateAccountRequest represents the request to create an account.
type CreateAccountRequest struct {
	Name        string      `json:"name"`
	AccountType AccountType `json:"account_type"`
	CommodityID int64       `json:"commodity_id"`
	ParentID    *int64      `json:"parent_id,omitempty"`
	Description string      `json:"description,omitempty"`
	Placeholder bool        `json:"placeholder,omitempty"`
}

// UpdateAccountRequest represents a partial account update. Only provided
// fields mutate.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Placeholder *bool   `json:"placeholder,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
}

// AccountTreeNode is an account with its children attached, for tree views.
type AccountTreeNode struct {
	Account
	Children []*AccountTreeNode `json:"children"`
}

// AccountBalance is the native-commodity balance of one account.
type AccountBalance struct {
	AccountID    int64 `json:"account_id"`
	BalanceMinor int64 `json:"balance_minor"`
	CommodityID  int64 `json:"commodity_id"`
}
