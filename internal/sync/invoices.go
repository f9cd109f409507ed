package sync

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/sync/dates"
)

func (s *Service) SyncInvoices(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityInvoice}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityInvoice))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, inv := range resp.Invoices {
		inv := inv
		s.guard(&res, inv.ID, func() error {
			return s.reconcileInvoice(ctx, inv, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncInvoiceByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityInvoice}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityInvoice, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, inv := range resp.Invoices {
		inv := inv
		s.guard(&res, inv.ID, func() error {
			return s.reconcileInvoice(ctx, inv, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcileInvoice(ctx context.Context, inv quickbooks.Invoice, res *Result) error {
	if inv.CustomerRef == nil || inv.CustomerRef.Name == "" {
		res.skip("Invoice %s skipped - no customer reference", inv.ID)
		return nil
	}

	customer, err := s.repo.FindCustomerByName(ctx, s.db, inv.CustomerRef.Name)
	if err != nil {
		return err
	}
	if customer == nil && inv.CustomerRef.Value != "" {
		customer, err = s.repo.FindCustomerByQuickBooksID(ctx, s.db, inv.CustomerRef.Value)
		if err != nil {
			return err
		}
	}
	if customer == nil {
		res.skip("Invoice %s skipped - customer %q not found", inv.ID, inv.CustomerRef.Name)
		return nil
	}

	existing, err := s.repo.FindSalesInvoiceByQuickBooksID(ctx, s.db, inv.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		res.skip("Invoice %s skipped - already exists", inv.ID)
		return nil
	}

	invoiceID := s.genID.Generate()
	var items []booksdomain.SalesInvoiceItem
	for _, line := range inv.Lines {
		detail := line.SalesItemLineDetail
		if line.DetailType != quickbooks.DetailSalesItem || detail == nil {
			continue
		}
		if detail.ItemRef == nil || detail.ItemRef.Name == "" {
			continue
		}

		item, err := s.repo.FindItemByName(ctx, s.db, detail.ItemRef.Name)
		if err != nil {
			return err
		}
		if item == nil {
			res.skip("Invoice %s - item %q not found", inv.ID, detail.ItemRef.Name)
			continue
		}

		qty := detail.Qty
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		rate := decimal.Zero
		if !qty.IsZero() {
			rate = line.Amount.Div(qty)
		}

		items = append(items, booksdomain.SalesInvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			ItemID:      item.ID,
			Qty:         qty,
			Rate:        rate,
			Amount:      line.Amount,
			Description: line.Description,
		})
	}

	if len(items) == 0 {
		res.skip("Invoice %s skipped - no items", inv.ID)
		return nil
	}

	posting, _, due := dates.NormalizeInvoiceDates(
		dates.Parse(inv.TxnDate),
		dates.Parse(inv.DueDate),
		time.Time{},
		s.now(),
	)

	invoice := booksdomain.SalesInvoice{
		ID:           invoiceID,
		CustomerID:   customer.ID,
		PostingDate:  posting,
		DueDate:      due,
		QuickBooksID: inv.ID,
		Items:        items,
	}
	if err := s.repo.CreateSalesInvoice(ctx, s.db, &invoice); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
