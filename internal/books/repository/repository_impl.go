package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/booksync/internal/books/domain"
	pkgdb "github.com/smallbiznis/booksync/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where(query, args...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func create(ctx context.Context, db *gorm.DB, row any) error {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repo) FindAccountByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.Account, error) {
	return first[domain.Account](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) FindAccountByMappedName(ctx context.Context, db *gorm.DB, mappedName string) (*domain.Account, error) {
	return first[domain.Account](ctx, db, "mapped_name = ? AND is_group = ?", mappedName, false)
}

func (r *repo) FindAccountByName(ctx context.Context, db *gorm.DB, name string) (*domain.Account, error) {
	return first[domain.Account](ctx, db, "name = ?", name)
}

func (r *repo) FindRootAccount(ctx context.Context, db *gorm.DB, rootType string) (*domain.Account, error) {
	name, ok := rootAccountNames[rootType]
	if !ok {
		return nil, nil
	}
	return first[domain.Account](ctx, db, "name = ? AND is_group = ?", name, true)
}

var rootAccountNames = map[string]string{
	"Asset":     domain.RootAllAssets,
	"Liability": domain.RootAllLiabilities,
	"Equity":    domain.RootAllEquity,
	"Income":    domain.RootAllIncome,
	"Expense":   domain.RootAllExpenses,
}

func (r *repo) FindDefaultAccount(ctx context.Context, db *gorm.DB, accountType string) (*domain.Account, error) {
	return first[domain.Account](ctx, db, "account_type = ? AND is_group = ? AND quick_books_id = ''", accountType, false)
}

func (r *repo) FindAccountByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Account, error) {
	return first[domain.Account](ctx, db, "id = ?", id)
}

func (r *repo) CreateAccount(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return create(ctx, db, account)
}

func (r *repo) FindCustomerByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.Customer, error) {
	return first[domain.Customer](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) FindCustomerByName(ctx context.Context, db *gorm.DB, name string) (*domain.Customer, error) {
	return first[domain.Customer](ctx, db, "name = ?", name)
}

func (r *repo) CreateCustomer(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return create(ctx, db, customer)
}

func (r *repo) UpdateCustomer(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) FindSupplierByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.Supplier, error) {
	return first[domain.Supplier](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) FindSupplierByName(ctx context.Context, db *gorm.DB, name string) (*domain.Supplier, error) {
	return first[domain.Supplier](ctx, db, "name = ?", name)
}

func (r *repo) CreateSupplier(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return create(ctx, db, supplier)
}

func (r *repo) UpdateSupplier(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Save(supplier).Error
}

func (r *repo) FindItemByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.Item, error) {
	return first[domain.Item](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) FindItemByName(ctx context.Context, db *gorm.DB, name string) (*domain.Item, error) {
	item, err := first[domain.Item](ctx, db, "code = ?", name)
	if err != nil || item != nil {
		return item, err
	}
	return first[domain.Item](ctx, db, "name = ?", name)
}

func (r *repo) CreateItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return create(ctx, db, item)
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) FindSalesInvoiceByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.SalesInvoice, error) {
	return first[domain.SalesInvoice](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) CreateSalesInvoice(ctx context.Context, db *gorm.DB, invoice *domain.SalesInvoice) error {
	return create(ctx, db, invoice)
}

func (r *repo) FindPurchaseInvoiceByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.PurchaseInvoice, error) {
	return first[domain.PurchaseInvoice](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) CreatePurchaseInvoice(ctx context.Context, db *gorm.DB, invoice *domain.PurchaseInvoice) error {
	return create(ctx, db, invoice)
}

// UpdatePurchaseInvoice saves header fields and replaces the item rows
// wholesale. Lines are never merged.
func (r *repo) UpdatePurchaseInvoice(ctx context.Context, db *gorm.DB, invoice *domain.PurchaseInvoice, items []domain.PurchaseInvoiceItem) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&domain.PurchaseInvoiceItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *repo) ListPurchaseInvoiceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.PurchaseInvoiceItem, error) {
	var items []domain.PurchaseInvoiceItem
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindPaymentEntryByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.PaymentEntry, error) {
	return first[domain.PaymentEntry](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) CreatePaymentEntry(ctx context.Context, db *gorm.DB, entry *domain.PaymentEntry) error {
	return create(ctx, db, entry)
}

func (r *repo) FindJournalEntryByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*domain.JournalEntry, error) {
	return first[domain.JournalEntry](ctx, db, "quick_books_id = ?", qbID)
}

func (r *repo) CreateJournalEntry(ctx context.Context, db *gorm.DB, entry *domain.JournalEntry) error {
	return create(ctx, db, entry)
}

// UpdateJournalEntry saves header fields and replaces the ledger lines
// wholesale.
func (r *repo) UpdateJournalEntry(ctx context.Context, db *gorm.DB, entry *domain.JournalEntry, lines []domain.JournalEntryLine) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(entry).Error; err != nil {
			return err
		}
		if err := tx.Where("entry_id = ?", entry.ID).Delete(&domain.JournalEntryLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *repo) ListJournalEntryLines(ctx context.Context, db *gorm.DB, entryID snowflake.ID) ([]domain.JournalEntryLine, error) {
	var lines []domain.JournalEntryLine
	err := db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
