package sync

import (
	"context"

	"go.uber.org/zap"
)

// SyncAll runs every entity kind in dependency order: accounts before the
// parties and items that reference them, masters before the transactions
// built on top. A kind whose fetch fails is recorded and the run moves on;
// only a missing connection aborts everything up front.
func (s *Service) SyncAll(ctx context.Context) ([]Result, error) {
	if _, err := s.settings.Credentials(ctx); err != nil {
		return nil, err
	}

	runs := []struct {
		name string
		fn   func(context.Context) (Result, error)
	}{
		{"accounts", s.SyncAccounts},
		{"customers", s.SyncCustomers},
		{"suppliers", s.SyncSuppliers},
		{"items", s.SyncItems},
		{"invoices", s.SyncInvoices},
		{"bills", s.SyncBills},
		{"payments", s.SyncPayments},
		{"journal entries", s.SyncJournalEntries},
	}

	results := make([]Result, 0, len(runs))
	for _, run := range runs {
		res, err := run.fn(ctx)
		if err != nil {
			s.log.Error("entity sync failed", zap.String("kind", run.name), zap.Error(err))
			res.skip("%s sync failed: %v", run.name, err)
		}
		results = append(results, res)
	}
	return results, nil
}
