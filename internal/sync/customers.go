package sync

import (
	"context"
	"errors"

	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"gorm.io/datatypes"
)

func (s *Service) SyncCustomers(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityCustomer}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityCustomer))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, cust := range resp.Customers {
		cust := cust
		s.guard(&res, cust.ID, func() error {
			return s.reconcileCustomer(ctx, cust, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncCustomerByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityCustomer}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityCustomer, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, cust := range resp.Customers {
		cust := cust
		s.guard(&res, cust.ID, func() error {
			return s.reconcileCustomer(ctx, cust, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcileCustomer(ctx context.Context, cust quickbooks.Customer, res *Result) error {
	if cust.DisplayName == "" {
		return nil
	}

	existing, err := s.repo.FindCustomerByQuickBooksID(ctx, s.db, cust.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		// Natural-key fallback for records migrated before the external id
		// column was populated.
		existing, err = s.repo.FindCustomerByName(ctx, s.db, cust.DisplayName)
		if err != nil {
			return err
		}
	}

	customerType := "Individual"
	if cust.CompanyName != "" {
		customerType = "Company"
	}
	email := ""
	if cust.PrimaryEmailAddr != nil {
		email = cust.PrimaryEmailAddr.Address
	}
	phone := ""
	if cust.PrimaryPhone != nil {
		phone = cust.PrimaryPhone.FreeFormNumber
	}

	if existing != nil {
		existing.Name = cust.DisplayName
		existing.CustomerType = customerType
		existing.Email = email
		existing.Phone = phone
		existing.QuickBooksID = cust.ID
		if err := s.repo.UpdateCustomer(ctx, s.db, existing); err != nil {
			return err
		}
		res.Updated++
		return nil
	}

	customer := booksdomain.Customer{
		ID:           s.genID.Generate(),
		Name:         cust.DisplayName,
		CustomerType: customerType,
		Email:        email,
		Phone:        phone,
		QuickBooksID: cust.ID,
		Metadata:     datatypes.JSONMap{},
	}
	if err := s.repo.CreateCustomer(ctx, s.db, &customer); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
