package models

import "time"

// Reconciliation state codes for a split.
const (
	ReconciledNo      = "n"
	ReconciledCleared = "c"
	ReconciledYes     = "y"
)

// Transaction represents a dated economic event. It exclusively owns its
// splits; the whole aggregate is persisted, replaced, and deleted together.
type Transaction struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Description string    `json:"description"`
	Notes       string    `json:"notes,omitempty"`
	ImportRef   *string   `json:"import_ref,omitempty"` // dedup key for imports
	CurrencyID  int64     `json:"currency_id"`
	Splits      []Split   `json:"splits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Split is one leg of a transaction. ValueMinor is in the transaction's
// currency, QuantityMinor in the account's native commodity. The splits of a
// transaction always sum to zero on ValueMinor; QuantityMinor is not
// zero-sum-constrained.
type Split struct {
	ID            int64  `json:"id"`
	TransactionID int64  `json:"transaction_id"`
	AccountID     int64  `json:"account_id"`
	ValueMinor    int64  `json:"value_minor"`
	QuantityMinor int64  `json:"quantity_minor"`
	Memo          string `json:"memo,omitempty"`
	Reconciled    string `json:"reconciled"` // "n", "c" or "y"
}

// CreateSplitRequest represents one split in a create or replace request.
type CreateSplitRequest struct {
	AccountID     int64  `json:"account_id"`
	ValueMinor    int64  `json:"value_minor"`
	QuantityMinor int64  `json:"quantity_minor"`
	Memo          string `json:"memo,omitempty"`
	Reconciled    string `json:"reconciled,omitempty"`
}

// CreateTransactionRequest represents the request to create a transaction.
type CreateTransactionRequest struct {
	Date        string               `json:"date"`
	Description string               `json:"description,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	ImportRef   *string              `json:"import_ref,omitempty"`
	CurrencyID  int64                `json:"currency_id"`
	Splits      []CreateSplitRequest `json:"splits"`
}

// UpdateTransactionRequest represents a partial transaction update. A non-nil
// Splits replaces the entire split set; individual splits are never patched
// in place.
type UpdateTransactionRequest struct {
	Date        *string              `json:"date,omitempty"`
	Description *string              `json:"description,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
	CurrencyID  *int64               `json:"currency_id,omitempty"`
	Splits      []CreateSplitRequest `json:"splits,omitempty"`
}

// RegisterEntry is one row of an account register: a split with its
// transaction context and the running balance through that row.
type RegisterEntry struct {
	SplitID             int64  `json:"split_id"`
	TransactionID       int64  `json:"transaction_id"`
	Date                string `json:"date"`
	Description         string `json:"description"`
	Memo                string `json:"memo,omitempty"`
	Transfer            string `json:"transfer"` // full names of the other legs' accounts
	QuantityMinor       int64  `json:"quantity_minor"`
	Reconciled          string `json:"reconciled"`
	RunningBalanceMinor int64  `json:"running_balance"`
}
