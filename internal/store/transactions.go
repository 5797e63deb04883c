package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mxbcash/mxbcash/internal/models"
)

// AccountSplit is one split of an account together with its owning
// transaction, as returned by SplitsByAccount.
type AccountSplit struct {
	Split       models.Split
	Transaction *models.Transaction
}

// CreateTransaction assigns ids to the transaction and its splits and
// persists the whole aggregate as a single value.
func (s *Store) CreateTransaction(t *models.Transaction) error {
	id, err := s.NextID(BucketTransactions)
	if err != nil {
		return fmt.Errorf("failed to generate ID: %w", err)
	}
	t.ID = id

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.assignSplitIDs(t); err != nil {
		return err
	}

	if err := s.Put(BucketTransactions, id, t); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction with its splits by ID.
func (s *Store) GetTransaction(id int64) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.Get(BucketTransactions, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// PutTransaction overwrites an existing transaction aggregate. Newly added
// splits (zero id) get fresh ids.
func (s *Store) PutTransaction(t *models.Transaction) error {
	if err := s.assignSplitIDs(t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()

	if err := s.Put(BucketTransactions, t.ID, t); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction deletes a transaction and, with it, all its splits.
func (s *Store) DeleteTransaction(id int64) error {
	return s.Delete(BucketTransactions, id)
}

func (s *Store) assignSplitIDs(t *models.Transaction) error {
	for i := range t.Splits {
		t.Splits[i].TransactionID = t.ID
		if t.Splits[i].ID != 0 {
			continue
		}
		// Split ids are drawn from the transactions bucket sequence.
		splitID, err := s.NextID(BucketTransactions)
		if err != nil {
			return fmt.Errorf("failed to generate split ID: %w", err)
		}
		t.Splits[i].ID = splitID
	}
	return nil
}

// AllTransactions retrieves every stored transaction, unordered.
func (s *Store) AllTransactions() ([]*models.Transaction, error) {
	results, err := s.List(BucketTransactions, nil)
	if err != nil {
		return nil, err
	}

	txns := make([]*models.Transaction, 0, len(results))
	for _, data := range results {
		var t models.Transaction
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		txns = append(txns, &t)
	}
	return txns, nil
}

// ListTransactions retrieves transactions optionally filtered by account
// membership and an inclusive date range, ordered by (date desc, id desc)
// and paginated.
func (s *Store) ListTransactions(accountID *int64, fromDate, toDate string, limit, offset int) ([]*models.Transaction, error) {
	txns, err := s.AllTransactions()
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Transaction, 0, len(txns))
	for _, t := range txns {
		if accountID != nil && !postsTo(t, *accountID) {
			continue
		}
		if fromDate != "" && t.Date < fromDate {
			continue
		}
		if toDate != "" && t.Date > toDate {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date > filtered[j].Date
		}
		return filtered[i].ID > filtered[j].ID
	})

	return paginate(filtered, limit, offset), nil
}

// FindTransactionByImportRef retrieves the transaction carrying the given
// import reference. Returns (nil, nil) when no transaction matches.
func (s *Store) FindTransactionByImportRef(ref string) (*models.Transaction, error) {
	txns, err := s.AllTransactions()
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		if t.ImportRef != nil && *t.ImportRef == ref {
			return t, nil
		}
	}
	return nil, nil
}

// SplitsByAccount retrieves all splits posted to an account, ordered by
// (transaction date, transaction id) ascending.
func (s *Store) SplitsByAccount(accountID int64) ([]AccountSplit, error) {
	txns, err := s.AllTransactions()
	if err != nil {
		return nil, err
	}

	var rows []AccountSplit
	for _, t := range txns {
		for _, sp := range t.Splits {
			if sp.AccountID == accountID {
				rows = append(rows, AccountSplit{Split: sp, Transaction: t})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Transaction.Date != rows[j].Transaction.Date {
			return rows[i].Transaction.Date < rows[j].Transaction.Date
		}
		return rows[i].Transaction.ID < rows[j].Transaction.ID
	})
	return rows, nil
}

// SumQuantityByAccount sums quantity_minor over the account's splits. A
// non-empty beforeDate restricts the sum to transactions dated strictly
// earlier. An account with no splits sums to zero.
func (s *Store) SumQuantityByAccount(accountID int64, beforeDate string) (int64, error) {
	txns, err := s.AllTransactions()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, t := range txns {
		if beforeDate != "" && t.Date >= beforeDate {
			continue
		}
		for _, sp := range t.Splits {
			if sp.AccountID == accountID {
				total += sp.QuantityMinor
			}
		}
	}
	return total, nil
}

// HasSplits reports whether any split references the account.
func (s *Store) HasSplits(accountID int64) (bool, error) {
	txns, err := s.AllTransactions()
	if err != nil {
		return false, err
	}
	for _, t := range txns {
		if postsTo(t, accountID) {
			return true, nil
		}
	}
	return false, nil
}

func postsTo(t *models.Transaction, accountID int64) bool {
	for _, sp := range t.Splits {
		if sp.AccountID == accountID {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
