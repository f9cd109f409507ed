package sync

import (
	"context"

	"github.com/smallbiznis/booksync/internal/quickbooks"
	"go.uber.org/zap"
)

// SyncEmployees fetches the remote roster but does not persist anything;
// there is no local employee record to reconcile into.
func (s *Service) SyncEmployees(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityEmployee}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityEmployee))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	s.log.Info("employees fetched", zap.Int("count", len(resp.Employees)))
	s.observe(res, nil)
	return res, nil
}
