package sync

import (
	"context"
	"errors"

	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/sync/mapping"
)

// SyncAccounts pulls the chart of accounts. Accounts already present (by
// QuickBooks id) are skipped entirely; parent hierarchy is resolved against
// already-synced accounts, so parents must arrive before children (QuickBooks
// returns them in creation order, which satisfies that).
func (s *Service) SyncAccounts(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityAccount}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityAccount))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, acc := range resp.Accounts {
		acc := acc
		s.guard(&res, acc.ID, func() error {
			return s.reconcileAccount(ctx, acc, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

// SyncAccountByID syncs a single account, used by webhook-triggered runs.
func (s *Service) SyncAccountByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityAccount}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityAccount, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, acc := range resp.Accounts {
		acc := acc
		s.guard(&res, acc.ID, func() error {
			return s.reconcileAccount(ctx, acc, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcileAccount(ctx context.Context, acc quickbooks.Account, res *Result) error {
	existing, err := s.repo.FindAccountByQuickBooksID(ctx, s.db, acc.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	accountType, rootType, ok := mapping.AccountType(acc.AccountType, acc.AccountSubType)
	if !ok {
		res.skip("Account %s skipped - unmapped account type %q", acc.Name, acc.AccountType)
		return nil
	}

	var parent *booksdomain.Account
	hasParentRef := acc.ParentRef != nil && acc.ParentRef.Value != ""
	if hasParentRef {
		parent, err = s.repo.FindAccountByQuickBooksID(ctx, s.db, acc.ParentRef.Value)
	} else {
		parent, err = s.repo.FindRootAccount(ctx, s.db, rootType)
	}
	if err != nil {
		return err
	}
	if parent == nil {
		res.skip("Account %s skipped - missing valid parent", acc.Name)
		return nil
	}

	number := acc.AcctNum
	if number == "" {
		number = "QB-" + acc.ID
	}

	parentID := parent.ID
	account := booksdomain.Account{
		ID:           s.genID.Generate(),
		Name:         acc.Name,
		Number:       number,
		AccountType:  accountType,
		IsGroup:      !hasParentRef,
		ParentID:     &parentID,
		MappedName:   acc.Name,
		QuickBooksID: acc.ID,
	}
	// A parentless account becomes a group node directly under its root
	// bucket and carries the root type itself; a child leaf inherits
	// placement from its parent.
	if !hasParentRef {
		account.RootType = rootType
	}

	if err := s.repo.CreateAccount(ctx, s.db, &account); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
