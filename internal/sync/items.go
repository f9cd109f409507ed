package sync

import (
	"context"
	"errors"

	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/quickbooks"
)

func (s *Service) SyncItems(ctx context.Context) (Result, error) {
	res := Result{Entity: quickbooks.EntityItem}

	resp, err := s.fetch(ctx, quickbooks.SelectAll(quickbooks.EntityItem))
	if err != nil {
		s.observe(res, err)
		return res, err
	}

	for _, item := range resp.Items {
		item := item
		s.guard(&res, item.ID, func() error {
			return s.reconcileItem(ctx, item, &res)
		})
	}

	s.log.Info(res.Summary())
	s.observe(res, nil)
	return res, nil
}

func (s *Service) SyncItemByID(ctx context.Context, qbID string) error {
	res := Result{Entity: quickbooks.EntityItem}
	resp, err := s.fetch(ctx, quickbooks.SelectByID(quickbooks.EntityItem, qbID))
	if err != nil {
		s.observe(res, err)
		return err
	}
	for _, item := range resp.Items {
		item := item
		s.guard(&res, item.ID, func() error {
			return s.reconcileItem(ctx, item, &res)
		})
	}
	s.observe(res, nil)
	return nil
}

func (s *Service) reconcileItem(ctx context.Context, qbItem quickbooks.Item, res *Result) error {
	code := qbItem.Name
	if code == "" {
		code = qbItem.ID
	}
	name := qbItem.FullyQualifiedName
	if name == "" {
		name = qbItem.Name
	}
	stockItem := qbItem.Type == "Inventory"

	existing, err := s.repo.FindItemByQuickBooksID(ctx, s.db, qbItem.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Name = name
		existing.Description = qbItem.Description
		existing.StockItem = stockItem
		if err := s.repo.UpdateItem(ctx, s.db, existing); err != nil {
			return err
		}
		res.Updated++
		return nil
	}

	item := booksdomain.Item{
		ID:           s.genID.Generate(),
		Code:         code,
		Name:         name,
		Description:  qbItem.Description,
		StockItem:    stockItem,
		QuickBooksID: qbItem.ID,
	}
	if err := s.repo.CreateItem(ctx, s.db, &item); err != nil {
		if errors.Is(err, booksdomain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	res.Created++
	return nil
}
