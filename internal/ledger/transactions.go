package ledger

import (
	"github.com/mxbcash/mxbcash/internal/models"
)

// CreateTransaction validates and persists a transaction with its splits as
// one atomic unit. It fails before anything is written when the transaction
// has fewer than 2 splits, when the splits' value_minor does not sum to zero,
// when a split posts to a placeholder account, or when the import reference
// is already taken.
func (s *Service) CreateTransaction(req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCommodity(req.CurrencyID); err != nil {
		return nil, asNotFound(err, "commodity", req.CurrencyID)
	}

	if req.ImportRef != nil && *req.ImportRef != "" {
		existing, err := s.store.FindTransactionByImportRef(*req.ImportRef)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, conflictf("import_ref %q already used by transaction %d", *req.ImportRef, existing.ID)
		}
	}

	splits, err := s.buildSplits(req.Splits)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Date:        req.Date,
		Description: req.Description,
		Notes:       req.Notes,
		ImportRef:   req.ImportRef,
		CurrencyID:  req.CurrencyID,
		Splits:      splits,
	}

	if err := s.store.CreateTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransaction retrieves a transaction with its splits.
func (s *Service) GetTransaction(id int64) (*models.Transaction, error) {
	txn, err := s.store.GetTransaction(id)
	if err != nil {
		return nil, asNotFound(err, "transaction", id)
	}
	return txn, nil
}

// ListTransactions retrieves transactions optionally filtered by account
// membership and an inclusive date range, newest first, paginated.
func (s *Service) ListTransactions(accountID *int64, fromDate, toDate string, limit, offset int) ([]*models.Transaction, error) {
	if fromDate != "" {
		if err := validateDate(fromDate); err != nil {
			return nil, err
		}
	}
	if toDate != "" {
		if err := validateDate(toDate); err != nil {
			return nil, err
		}
	}
	return s.store.ListTransactions(accountID, fromDate, toDate, limit, offset)
}

// UpdateTransaction applies a partial update. Scalar fields mutate in place;
// a non-nil split set is re-validated and then replaces the previous set
// entirely. Partial split edits are not supported.
func (s *Service) UpdateTransaction(id int64, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if err := validateDate(*req.Date); err != nil {
			return nil, err
		}
		txn.Date = *req.Date
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.CurrencyID != nil {
		if _, err := s.store.GetCommodity(*req.CurrencyID); err != nil {
			return nil, asNotFound(err, "commodity", *req.CurrencyID)
		}
		txn.CurrencyID = *req.CurrencyID
	}

	if req.Splits != nil {
		splits, err := s.buildSplits(req.Splits)
		if err != nil {
			return nil, err
		}
		txn.Splits = splits
	}

	if err := s.store.PutTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction and all its splits.
func (s *Service) DeleteTransaction(id int64) error {
	if _, err := s.GetTransaction(id); err != nil {
		return err
	}
	return s.store.DeleteTransaction(id)
}

// buildSplits validates a split set and materializes it. The zero-sum
// invariant holds on value_minor only; quantity_minor reflects conversion at
// booking time and is the caller's responsibility.
func (s *Service) buildSplits(reqs []models.CreateSplitRequest) ([]models.Split, error) {
	if len(reqs) < 2 {
		return nil, validationf("a transaction requires at least 2 splits")
	}

	var total int64
	for _, sp := range reqs {
		total += sp.ValueMinor
	}
	if total != 0 {
		return nil, validationf("splits do not sum to zero: sum(value_minor) = %d", total)
	}

	splits := make([]models.Split, len(reqs))
	for i, sp := range reqs {
		account, err := s.store.GetAccount(sp.AccountID)
		if err != nil {
			return nil, asNotFound(err, "account", sp.AccountID)
		}
		if account.Placeholder {
			return nil, validationf("account %q is a placeholder and cannot hold splits", account.FullName)
		}

		reconciled, err := normalizeReconciled(sp.Reconciled)
		if err != nil {
			return nil, err
		}

		splits[i] = models.Split{
			AccountID:     sp.AccountID,
			ValueMinor:    sp.ValueMinor,
			QuantityMinor: sp.QuantityMinor,
			Memo:          sp.Memo,
			Reconciled:    reconciled,
		}
	}
	return splits, nil
}

func normalizeReconciled(r string) (string, error) {
	switch r {
	case "":
		return models.ReconciledNo, nil
	case models.ReconciledNo, models.ReconciledCleared, models.ReconciledYes:
		return r, nil
	}
	return "", validationf("invalid reconciled state %q: expected \"n\", \"c\" or \"y\"", r)
}
