package store

import (
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/mxbcash/mxbcash/internal/models"
)

// CreateAccount assigns an id to the account and persists it.
func (s *Store) CreateAccount(a *models.Account) error {
	id, err := s.NextID(BucketAccounts)
	if err != nil {
		return fmt.Errorf("failed to generate ID: %w", err)
	}
	a.ID = id

	if err := s.Put(BucketAccounts, id, a); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (s *Store) GetAccount(id int64) (*models.Account, error) {
	var a models.Account
	if err := s.Get(BucketAccounts, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// PutAccount overwrites an existing account.
func (s *Store) PutAccount(a *models.Account) error {
	if err := s.Put(BucketAccounts, a.ID, a); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// PutAccounts overwrites several accounts in a single database transaction.
// Used when a rename or re-parent must rewrite a whole subtree's full names
// without a partially updated tree ever being visible.
func (s *Store) PutAccounts(accounts []*models.Account) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, a := range accounts {
			if err := putJSON(tx, BucketAccounts, a.ID, a); err != nil {
				return fmt.Errorf("failed to update account %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

// DeleteAccount deletes an account by ID.
func (s *Store) DeleteAccount(id int64) error {
	return s.Delete(BucketAccounts, id)
}

// ListAccounts retrieves all accounts ordered by full name.
func (s *Store) ListAccounts() ([]*models.Account, error) {
	results, err := s.List(BucketAccounts, nil)
	if err != nil {
		return nil, err
	}

	accounts := make([]*models.Account, 0, len(results))
	for _, data := range results {
		var a models.Account
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal account: %w", err)
		}
		accounts = append(accounts, &a)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].FullName < accounts[j].FullName
	})
	return accounts, nil
}

// ListChildAccounts retrieves the direct children of an account.
func (s *Store) ListChildAccounts(parentID int64) ([]*models.Account, error) {
	accounts, err := s.ListAccounts()
	if err != nil {
		return nil, err
	}

	children := make([]*models.Account, 0)
	for _, a := range accounts {
		if a.ParentID != nil && *a.ParentID == parentID {
			children = append(children, a)
		}
	}
	return children, nil
}

// CountAccounts returns the number of stored accounts.
func (s *Store) CountAccounts() (int, error) {
	results, err := s.List(BucketAccounts, nil)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}
