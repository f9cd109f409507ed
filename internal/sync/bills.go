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

// SyncBills pulls vendor bills and translates each into either a Journal
// Entry (account-based expense lines, plus one synthesized balancing credit
// against the supplier's payable account) or a Purchase Invoice (item-based
// lines). Bills mixing both detail types are skipped whole; nothing is
// partially synced.
func (s *Service) SyncBills(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityBill}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityBill))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	payable, err := s.defaultAccount(ctx, booksdomain.AccountTypePayable)
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, bill := range resp.Bills {
		bill := bill
		s.guard(&res, bill.ID, func() error {
			return s.reconcileBill(ctx, bill, payable, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncBillByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityBill}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityBill, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	payable, err := s.defaultAccount(ctx, booksdomain.AccountTypePayable)
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, bill := range resp.Bills {
		bill := bill
		s.guard(&res, bill.ID, func() error {
			return s.reconcileBill(ctx, bill, payable, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcileBill(ctx context.Context, bill quickbooks.Bill, defaultPayable *booksdomain.Account, res *Result) error {
	ref := bill.DocNumber
	if ref == "" {
		ref = bill.ID
	}

	supplier, err := s.resolveSupplier(ctx, bill.VendorRef)
	if err != nil {
		return err
	}
	if supplier == nil {
		res.skip("Bill %s skipped - supplier not found", ref)
		return nil
	}

	hasAccountLines := false
	hasItemLines := false
	for _, line := range bill.Lines {
		switch line.DetailType {
		case quickbooks.DetailAccountBased:
			hasAccountLines = true
		case quickbooks.DetailItemBased:
			hasItemLines = true
		}
	}

	switch {
	case hasAccountLines && !hasItemLines:
		return s.billToJournalEntry(ctx, bill, ref, supplier, defaultPayable, res)
	case hasItemLines && !hasAccountLines:
		return s.billToPurchaseInvoice(ctx, bill, ref, supplier, res)
	default:
		res.skip("Bill %s skipped - mixed account/item lines", ref)
		return nil
	}
}

func (s *Service) resolveSupplier(ctx context.Context, vendorRef *quickbooks.Ref) (*booksdomain.Supplier, error) {
	if vendorRef == nil {
		return nil, nil
	}
	if vendorRef.Value != "" {
		supplier, err := s.repo.FindSupplierByQuickBooksID(ctx, s.db, vendorRef.Value)
		if err != nil || supplier != nil {
			return supplier, err
		}
	}
	if vendorRef.Name != "" {
		return s.repo.FindSupplierByName(ctx, s.db, vendorRef.Name)
	}
	return nil, nil
}

func (s *Service) billToJournalEntry(ctx context.Context, bill quickbooks.Bill, ref string, supplier *booksdomain.Supplier, defaultPayable *booksdomain.Account, res *Result) error {
	entryID := s.genID.Generate()
	var lines []booksdomain.JournalEntryLine
	totalCredit := decimal.Zero

	for _, line := range bill.Lines {
		detail := line.AccountBasedExpenseLineDetail
		if line.DetailType != quickbooks.DetailAccountBased || detail == nil {
			continue
		}
		accountName := ""
		if detail.AccountRef != nil {
			accountName = detail.AccountRef.Name
		}

		expense, err := s.repo.FindAccountByMappedName(ctx, s.db, accountName)
		if err != nil {
			return err
		}
		if expense == nil {
			// One unresolvable account voids the whole bill; a partial entry
			// would not balance.
			res.skip("Bill %s skipped - account mapping missing: %s", ref, accountName)
			return nil
		}

		lines = append(lines, booksdomain.JournalEntryLine{
			ID:        s.genID.Generate(),
			EntryID:   entryID,
			AccountID: expense.ID,
			Debit:     line.Amount,
			Credit:    decimal.Zero,
			Remark:    "bills of QBO",
		})
		totalCredit = totalCredit.Add(line.Amount)
	}

	payableID := supplier.PayableAccountID
	if payableID == 0 {
		payableID = defaultPayable.ID
	}
	supplierID := supplier.ID
	lines = append(lines, booksdomain.JournalEntryLine{
		ID:        s.genID.Generate(),
		EntryID:   entryID,
		AccountID: payableID,
		Debit:     decimal.Zero,
		Credit:    totalCredit,
		PartyType: "Supplier",
		PartyID:   &supplierID,
		Remark:    "bills of QBO",
	})

	posting, cheque := dates.AdjustJournalDates(
		dates.Parse(bill.TxnDate),
		dates.Parse(bill.DueDate),
		s.now(),
	)

	existing, err := s.repo.FindJournalEntryByQuickBooksID(ctx, s.db, bill.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.PostingDate = posting
		existing.ChequeNo = bill.DocNumber
		existing.ChequeDate = cheque
		for i := range lines {
			lines[i].EntryID = existing.ID
		}
		if err := s.repo.UpdateJournalEntry(ctx, s.db, existing, lines); err != nil {
			return err
		}
		res.Updated++
		return nil
	}

	entry := booksdomain.JournalEntry{
		ID:           entryID,
		PostingDate:  posting,
		ChequeNo:     bill.DocNumber,
		ChequeDate:   cheque,
		Remark:       "bills of QBO",
		QuickBooksID: bill.ID,
		Lines:        lines,
	}
	if err := s.repo.CreateJournalEntry(ctx, s.db, &entry); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}

func (s *Service) billToPurchaseInvoice(ctx context.Context, bill quickbooks.Bill, ref string, supplier *booksdomain.Supplier, res *Result) error {
	invoiceID := s.genID.Generate()
	var items []booksdomain.PurchaseInvoiceItem

	for _, line := range bill.Lines {
		detail := line.ItemBasedExpenseLineDetail
		if line.DetailType != quickbooks.DetailItemBased || detail == nil {
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
			res.skip("Bill %s skipped - item %q not found", ref, detail.ItemRef.Name)
			continue
		}

		qty := detail.Qty
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		rate := line.Amount.Div(qty)
		description := line.Description
		if description == "" {
			description = detail.ItemRef.Name
		}

		items = append(items, booksdomain.PurchaseInvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			ItemID:      item.ID,
			Qty:         qty,
			Rate:        rate,
			Amount:      line.Amount,
			Description: description,
		})
	}

	if len(items) == 0 {
		res.skip("Bill %s skipped - no items", ref)
		return nil
	}

	posting, billDate, due := dates.NormalizeInvoiceDates(
		dates.Parse(bill.TxnDate),
		dates.Parse(bill.DueDate),
		time.Time{},
		s.now(),
	)

	existing, err := s.repo.FindPurchaseInvoiceByQuickBooksID(ctx, s.db, bill.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.SupplierID = supplier.ID
		existing.PostingDate = posting
		existing.BillDate = billDate
		existing.DueDate = due
		if bill.DocNumber != "" {
			existing.BillNo = bill.DocNumber
		}
		for i := range items {
			items[i].InvoiceID = existing.ID
		}
		if err := s.repo.UpdatePurchaseInvoice(ctx, s.db, existing, items); err != nil {
			return err
		}
		res.Updated++
		return nil
	}

	invoice := booksdomain.PurchaseInvoice{
		ID:           invoiceID,
		SupplierID:   supplier.ID,
		PostingDate:  posting,
		BillDate:     billDate,
		DueDate:      due,
		BillNo:       bill.DocNumber,
		QuickBooksID: bill.ID,
		Items:        items,
	}
	if err := s.repo.CreatePurchaseInvoice(ctx, s.db, &invoice); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
