package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyExists = errors.New("already_exists")
)

// Repository is the lookup and write surface the reconciliation engine runs
// against. Find methods return (nil, nil) when no row matches; Create maps
// storage-level duplicate key violations to ErrAlreadyExists so concurrent
// syncs racing on the same QuickBooks id converge instead of duplicating.
type Repository interface {
	FindAccountByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*Account, error)
	FindAccountByMappedName(ctx context.Context, db *gorm.DB, mappedName string) (*Account, error)
	FindAccountByName(ctx context.Context, db *gorm.DB, name string) (*Account, error)
	FindRootAccount(ctx context.Context, db *gorm.DB, rootType string) (*Account, error)
	FindDefaultAccount(ctx context.Context, db *gorm.DB, accountType string) (*Account, error)
	FindAccountByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	CreateAccount(ctx context.Context, db *gorm.DB, account *Account) error

	FindCustomerByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*Customer, error)
	FindCustomerByName(ctx context.Context, db *gorm.DB, name string) (*Customer, error)
	CreateCustomer(ctx context.Context, db *gorm.DB, customer *Customer) error
	UpdateCustomer(ctx context.Context, db *gorm.DB, customer *Customer) error

	FindSupplierByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*Supplier, error)
	FindSupplierByName(ctx context.Context, db *gorm.DB, name string) (*Supplier, error)
	CreateSupplier(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	UpdateSupplier(ctx context.Context, db *gorm.DB, supplier *Supplier) error

	FindItemByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*Item, error)
	FindItemByName(ctx context.Context, db *gorm.DB, name string) (*Item, error)
	CreateItem(ctx context.Context, db *gorm.DB, item *Item) error
	UpdateItem(ctx context.Context, db *gorm.DB, item *Item) error

	FindSalesInvoiceByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*SalesInvoice, error)
	CreateSalesInvoice(ctx context.Context, db *gorm.DB, invoice *SalesInvoice) error

	FindPurchaseInvoiceByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*PurchaseInvoice, error)
	CreatePurchaseInvoice(ctx context.Context, db *gorm.DB, invoice *PurchaseInvoice) error
	UpdatePurchaseInvoice(ctx context.Context, db *gorm.DB, invoice *PurchaseInvoice, items []PurchaseInvoiceItem) error
	ListPurchaseInvoiceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]PurchaseInvoiceItem, error)

	FindPaymentEntryByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*PaymentEntry, error)
	CreatePaymentEntry(ctx context.Context, db *gorm.DB, entry *PaymentEntry) error

	FindJournalEntryByQuickBooksID(ctx context.Context, db *gorm.DB, qbID string) (*JournalEntry, error)
	CreateJournalEntry(ctx context.Context, db *gorm.DB, entry *JournalEntry) error
	UpdateJournalEntry(ctx context.Context, db *gorm.DB, entry *JournalEntry, lines []JournalEntryLine) error
	ListJournalEntryLines(ctx context.Context, db *gorm.DB, entryID snowflake.ID) ([]JournalEntryLine, error)
}
