package ledger

import (
	"errors"
	"sort"
	"strings"

	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/store"
)

// CreateAccount creates an account and computes its full name by walking the
// parent chain. A parent id that does not resolve is not an error: the
// account keeps its own name as the full name (degenerate fallback).
func (s *Service) CreateAccount(req models.CreateAccountRequest) (*models.Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationf("account name must not be empty")
	}
	if !req.AccountType.Valid() {
		return nil, validationf("unknown account type %q", req.AccountType)
	}
	if _, err := s.store.GetCommodity(req.CommodityID); err != nil {
		return nil, asNotFound(err, "commodity", req.CommodityID)
	}

	account := &models.Account{
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		Placeholder: req.Placeholder,
		CommodityID: req.CommodityID,
		ParentID:    req.ParentID,
	}

	fullName, err := s.computeFullName(account)
	if err != nil {
		return nil, err
	}
	account.FullName = fullName

	if err := s.store.CreateAccount(account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves an account by id.
func (s *Service) GetAccount(id int64) (*models.Account, error) {
	account, err := s.store.GetAccount(id)
	if err != nil {
		return nil, asNotFound(err, "account", id)
	}
	return account, nil
}

// ListAccounts retrieves all accounts ordered by full name.
func (s *Service) ListAccounts() ([]*models.Account, error) {
	return s.store.ListAccounts()
}

// UpdateAccount applies a partial update, then recomputes the full name of
// the account and of every descendant. The whole subtree rewrite is committed
// as one storage transaction. Re-parenting onto the account itself or onto
// one of its descendants is rejected.
func (s *Service) UpdateAccount(id int64, req models.UpdateAccountRequest) (*models.Account, error) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	target, ok := byID[id]
	if !ok {
		return nil, &NotFoundError{Entity: "account", ID: id}
	}

	if req.ParentID != nil {
		if err := checkNoCycle(byID, id, *req.ParentID); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationf("account name must not be empty")
		}
		target.Name = *req.Name
	}
	if req.Description != nil {
		target.Description = *req.Description
	}
	if req.Placeholder != nil {
		target.Placeholder = *req.Placeholder
	}
	if req.ParentID != nil {
		target.ParentID = req.ParentID
	}

	children := make(map[int64][]*models.Account, len(accounts))
	for _, a := range accounts {
		if a.ParentID != nil {
			children[*a.ParentID] = append(children[*a.ParentID], a)
		}
	}

	var changed []*models.Account
	var recompute func(a *models.Account)
	recompute = func(a *models.Account) {
		a.FullName = fullNameIn(byID, a)
		changed = append(changed, a)
		for _, child := range children[a.ID] {
			recompute(child)
		}
	}
	recompute(target)

	if err := s.store.PutAccounts(changed); err != nil {
		return nil, err
	}
	return target, nil
}

// DeleteAccount removes an account. Deletion is blocked while the account has
// children or while any split references it.
func (s *Service) DeleteAccount(id int64) error {
	if _, err := s.GetAccount(id); err != nil {
		return err
	}

	accounts, err := s.store.ListAccounts()
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.ParentID != nil && *a.ParentID == id {
			return conflictf("cannot delete account %d: it has child accounts", id)
		}
	}

	hasSplits, err := s.store.HasSplits(id)
	if err != nil {
		return err
	}
	if hasSplits {
		return conflictf("cannot delete account %d: it has transactions", id)
	}

	return s.store.DeleteAccount(id)
}

// Balance returns the sum of quantity_minor over all splits posted to the
// account, in the account's native commodity.
func (s *Service) Balance(id int64) (*models.AccountBalance, error) {
	account, err := s.GetAccount(id)
	if err != nil {
		return nil, err
	}

	total, err := s.store.SumQuantityByAccount(id, "")
	if err != nil {
		return nil, err
	}

	return &models.AccountBalance{
		AccountID:    id,
		BalanceMinor: total,
		CommodityID:  account.CommodityID,
	}, nil
}

// BuildTree groups a flat account list into a forest. Accounts whose parent
// is absent from the input are treated as roots. Roots and siblings are
// sorted by full name for determinism.
func BuildTree(accounts []*models.Account) []*models.AccountTreeNode {
	byID := make(map[int64]*models.AccountTreeNode, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = &models.AccountTreeNode{Account: *a, Children: []*models.AccountTreeNode{}}
	}

	var roots []*models.AccountTreeNode
	for _, a := range accounts {
		node := byID[a.ID]
		if a.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*a.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	for _, node := range byID {
		sortNodes(node.Children)
	}
	return roots
}

func sortNodes(nodes []*models.AccountTreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].FullName < nodes[j].FullName
	})
}

// Register returns the account's splits ordered by (transaction date,
// transaction id), paginated, each with the running balance through that row.
//
// The opening balance is the sum of quantities on transactions dated strictly
// before the first returned row, so running balances are from-inception
// totals only when offset is zero (or when the skipped rows share the first
// row's date). This mirrors the behavior register consumers already depend
// on.
func (s *Service) Register(accountID int64, limit, offset int) ([]models.RegisterEntry, error) {
	if _, err := s.GetAccount(accountID); err != nil {
		return nil, err
	}

	rows, err := s.store.SplitsByAccount(accountID)
	if err != nil {
		return nil, err
	}

	if offset >= len(rows) {
		return []models.RegisterEntry{}, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	if len(rows) == 0 {
		return []models.RegisterEntry{}, nil
	}

	opening, err := s.store.SumQuantityByAccount(accountID, rows[0].Transaction.Date)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.FullName
	}

	entries := make([]models.RegisterEntry, 0, len(rows))
	running := opening
	for _, row := range rows {
		running += row.Split.QuantityMinor
		entries = append(entries, models.RegisterEntry{
			SplitID:             row.Split.ID,
			TransactionID:       row.Transaction.ID,
			Date:                row.Transaction.Date,
			Description:         row.Transaction.Description,
			Memo:                row.Split.Memo,
			Transfer:            transferNames(row.Transaction, accountID, names),
			QuantityMinor:       row.Split.QuantityMinor,
			Reconciled:          row.Split.Reconciled,
			RunningBalanceMinor: running,
		})
	}
	return entries, nil
}

// transferNames joins the full names of the accounts on the other legs of
// the transaction.
func transferNames(t *models.Transaction, accountID int64, names map[int64]string) string {
	var parts []string
	for _, sp := range t.Splits {
		if sp.AccountID == accountID {
			continue
		}
		if name, ok := names[sp.AccountID]; ok {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

// computeFullName walks the parent chain root-to-leaf. A broken link stops
// the walk instead of failing.
func (s *Service) computeFullName(a *models.Account) (string, error) {
	parts := []string{a.Name}
	cur := a
	for cur.ParentID != nil {
		parent, err := s.store.GetAccount(*cur.ParentID)
		if errors.Is(err, store.ErrNotFound) {
			break
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, parent.Name)
		cur = parent
	}
	return joinReversed(parts), nil
}

// fullNameIn computes the full name against an in-memory account arena, so a
// subtree recomputation sees renames applied earlier in the same call.
func fullNameIn(byID map[int64]*models.Account, a *models.Account) string {
	parts := []string{a.Name}
	cur := a
	for cur.ParentID != nil {
		parent, ok := byID[*cur.ParentID]
		if !ok {
			break
		}
		parts = append(parts, parent.Name)
		cur = parent
	}
	return joinReversed(parts)
}

// checkNoCycle rejects re-parenting account id onto itself or onto any of
// its descendants.
func checkNoCycle(byID map[int64]*models.Account, id, newParentID int64) error {
	cur := newParentID
	for {
		if cur == id {
			return validationf("cannot set parent of account %d to %d: would create a cycle", id, newParentID)
		}
		a, ok := byID[cur]
		if !ok || a.ParentID == nil {
			return nil
		}
		cur = *a.ParentID
	}
}

func joinReversed(parts []string) string {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ":")
}
