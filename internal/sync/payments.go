package sync

import (
	"context"
	"errors"

	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/sync/dates"
)

func (s *Service) SyncPayments(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityPayment}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityPayment))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	receivable, err := s.defaultAccount(ctx, booksdomain.AccountTypeReceivable)
	if err != nil {
		s.observe(res, err)
		return res, err
	}
	bank, err := s.defaultAccount(ctx, booksdomain.AccountTypeBank)
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, payment := range resp.Payments {
		payment := payment
		s.guard(&res, payment.ID, func() error {
			return s.reconcilePayment(ctx, payment, receivable, bank, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncPaymentByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityPayment}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityPayment, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	receivable, err := s.defaultAccount(ctx, booksdomain.AccountTypeReceivable)
	if err != nil {
		s.observe(res, err)
		return err
	}
	bank, err := s.defaultAccount(ctx, booksdomain.AccountTypeBank)
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, payment := range resp.Payments {
		payment := payment
		s.guard(&res, payment.ID, func() error {
			return s.reconcilePayment(ctx, payment, receivable, bank, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcilePayment(ctx context.Context, payment quickbooks.Payment, receivable, bank *booksdomain.Account, res *Result) error {
	if !payment.TotalAmt.IsPositive() {
		res.skip("Payment %s skipped - non-positive amount %s", payment.ID, payment.TotalAmt)
		return nil
	}

	if payment.CustomerRef == nil || payment.CustomerRef.Value == "" {
		res.skip("Payment %s skipped - no customer reference", payment.ID)
		return nil
	}
	customer, err := s.repo.FindCustomerByQuickBooksID(ctx, s.db, payment.CustomerRef.Value)
	if err != nil {
		return err
	}
	if customer == nil {
		res.skip("Payment %s skipped - customer %q not found", payment.ID, payment.CustomerRef.Name)
		return nil
	}

	existing, err := s.repo.FindPaymentEntryByQuickBooksID(ctx, s.db, payment.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	posting := dates.Parse(payment.TxnDate)
	if posting.IsZero() {
		posting = dates.Day(s.now())
	}

	entry := booksdomain.PaymentEntry{
		ID:           s.genID.Generate(),
		CustomerID:   customer.ID,
		PostingDate:  posting,
		PaidAmount:   payment.TotalAmt,
		PaidFromID:   receivable.ID,
		PaidToID:     bank.ID,
		ReferenceNo:  payment.ID,
		QuickBooksID: payment.ID,
	}
	if err := s.repo.CreatePaymentEntry(ctx, s.db, &entry); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
