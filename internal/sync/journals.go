package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/sync/dates"
	"go.uber.org/zap"
)

func (s *Service) SyncJournalEntries(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityJournalEntry}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityJournalEntry))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, je := range resp.JournalEntries {
		je := je
		s.guard(&res, je.ID, func() error {
			return s.reconcileJournalEntry(ctx, je, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncJournalEntryByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityJournalEntry}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityJournalEntry, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, je := range resp.JournalEntries {
		je := je
		s.guard(&res, je.ID, func() error {
			return s.reconcileJournalEntry(ctx, je, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcileJournalEntry(ctx context.Context, je quickbooks.JournalEntry, res *Result) error {
	existing, err := s.repo.FindJournalEntryByQuickBooksID(ctx, s.db, je.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	entryID := s.genID.Generate()
	var lines []booksdomain.JournalEntryLine

	for _, line := range je.Lines {
		detail := line.JournalEntryLineDetail
		if line.DetailType != quickbooks.DetailJournalEntryLine || detail == nil {
			continue
		}
		accountName := ""
		if detail.AccountRef != nil {
			accountName = detail.AccountRef.Name
		}

		account, err := s.repo.FindAccountByMappedName(ctx, s.db, accountName)
		if err != nil {
			return err
		}
		if account == nil {
			res.skip("JournalEntry %s skipped - no account mapped for %q", je.ID, accountName)
			return nil
		}

		debit, credit := decimal.Zero, decimal.Zero
		switch detail.PostingType {
		case quickbooks.PostingDebit:
			debit = line.Amount
		case quickbooks.PostingCredit:
			credit = line.Amount
		default:
			// Anything else zeroes both columns; the remote side allows
			// values this sync does not recognize.
			s.log.Warn("unknown posting type, zeroing line",
				zap.String("journal_entry", je.ID),
				zap.String("posting_type", detail.PostingType),
			)
		}

		lines = append(lines, booksdomain.JournalEntryLine{
			ID:        s.genID.Generate(),
			EntryID:   entryID,
			AccountID: account.ID,
			Debit:     debit,
			Credit:    credit,
		})
	}

	if len(lines) == 0 {
		res.skip("JournalEntry %s skipped - no ledger lines", je.ID)
		return nil
	}

	posting, _ := dates.AdjustJournalDates(
		dates.Parse(je.TxnDate),
		dates.Parse(je.DueDate),
		s.now(),
	)

	entry := booksdomain.JournalEntry{
		ID:           entryID,
		PostingDate:  posting,
		Remark:       fmt.Sprintf("QBO Journal Entry %s", je.ID),
		QuickBooksID: je.ID,
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
