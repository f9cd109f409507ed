package sync

import (
	"context"
	"errors"
	"fmt"

	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
)

func (s *Service) SyncSuppliers(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityVendor}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityVendor))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	payable, err := s.defaultAccount(ctx, booksdomain.AccountTypePayable)
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, vend := range resp.Vendors {
		vend := vend
		s.guard(&res, vend.ID, func() error {
			return s.reconcileSupplier(ctx, vend, payable, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncSupplierByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityVendor}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityVendor, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	payable, err := s.defaultAccount(ctx, booksdomain.AccountTypePayable)
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, vend := range resp.Vendors {
		vend := vend
		s.guard(&res, vend.ID, func() error {
			return s.reconcileSupplier(ctx, vend, payable, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

// defaultAccount resolves a seeded fallback leaf account; its absence is a
// configuration error that aborts the run.
func (s *Service) defaultAccount(ctx context.Context, accountType string) (*booksdomain.Account, error) {
	account, err := s.repo.FindDefaultAccount(ctx, s.db, accountType)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("no default %s account found", accountType)
	}
	return account, nil
}

func (s *Service) reconcileSupplier(ctx context.Context, vend quickbooks.Vendor, payable *booksdomain.Account, res *Result) error {
	if vend.DisplayName == "" {
		return nil
	}

	existing, err := s.repo.FindSupplierByQuickBooksID(ctx, s.db, vend.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		existing, err = s.repo.FindSupplierByName(ctx, s.db, vend.DisplayName)
		if err != nil {
			return err
		}
	}

	companyName := vend.CompanyName
	if companyName == "" {
		companyName = vend.DisplayName
	}
	email := ""
	if vend.PrimaryEmailAddr != nil {
		email = vend.PrimaryEmailAddr.Address
	}
	phone := ""
	if vend.PrimaryPhone != nil {
		phone = vend.PrimaryPhone.FreeFormNumber
	}

	if existing != nil {
		existing.Name = vend.DisplayName
		existing.CompanyName = companyName
		existing.Email = email
		existing.Phone = phone
		existing.QuickBooksID = vend.ID
		if existing.PayableAccountID == 0 {
			existing.PayableAccountID = payable.ID
		}
		if err := s.repo.UpdateSupplier(ctx, s.db, existing); err != nil {
			return err
		}
		res.Updated++
		return nil
	}

	supplier := booksdomain.Supplier{
		ID:               s.genID.Generate(),
		Name:             vend.DisplayName,
		CompanyName:      companyName,
		Email:            email,
		Phone:            phone,
		PayableAccountID: payable.ID,
		QuickBooksID:     vend.ID,
	}
	if err := s.repo.CreateSupplier(ctx, s.db, &supplier); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
