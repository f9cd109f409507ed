package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/booksync/internal/quickbooks"
)

// Kind is the closed set of entity kinds this sync understands. Webhook
// notifications and API calls naming anything else are rejected, never
// dispatched dynamically.
type Kind string

const (
	KindAccount      Kind = quickbooks.EntityAccount
	KindCustomer     Kind = quickbooks.EntityCustomer
	KindSupplier     Kind = quickbooks.EntityVendor
	KindItem         Kind = quickbooks.EntityItem
	KindInvoice      Kind = quickbooks.EntityInvoice
	KindBill         Kind = quickbooks.EntityBill
	KindPayment      Kind = quickbooks.EntityPayment
	KindJournalEntry Kind = quickbooks.EntityJournalEntry
	KindEmployee     Kind = quickbooks.EntityEmployee
)

var kindAliases = map[string]Kind{
	"account":        KindAccount,
	"accounts":       KindAccount,
	"customer":       KindCustomer,
	"customers":      KindCustomer,
	"vendor":         KindSupplier,
	"vendors":        KindSupplier,
	"supplier":       KindSupplier,
	"suppliers":      KindSupplier,
	"item":           KindItem,
	"items":          KindItem,
	"invoice":        KindInvoice,
	"invoices":       KindInvoice,
	"bill":           KindBill,
	"bills":          KindBill,
	"payment":        KindPayment,
	"payments":       KindPayment,
	"journalentry":   KindJournalEntry,
	"journalentries": KindJournalEntry,
	"employee":       KindEmployee,
	"employees":      KindEmployee,
}

// KindFromName resolves a QuickBooks entity name or an API path segment to a
// Kind, case-insensitively.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(name)]
	return k, ok
}

// SyncKind runs a full sync for one entity kind.
func (s *Service) SyncKind(ctx context.Context, kind Kind) (Result, error) {
	switch kind {
	case KindAccount:
		return s.SyncAccounts(ctx)
	case KindCustomer:
		return s.SyncCustomers(ctx)
	case KindSupplier:
		return s.SyncSuppliers(ctx)
	case KindItem:
		return s.SyncItems(ctx)
	case KindInvoice:
		return s.SyncInvoices(ctx)
	case KindBill:
		return s.SyncBills(ctx)
	case KindPayment:
		return s.SyncPayments(ctx)
	case KindJournalEntry:
		return s.SyncJournalEntries(ctx)
	case KindEmployee:
		return s.SyncEmployees(ctx)
	default:
		return Result{}, fmt.Errorf("unknown entity kind %q", kind)
	}
}

// SyncKindByID syncs a single record of the given kind, as webhook
// notifications request.
func (s *Service) SyncKindByID(ctx context.Context, kind Kind, qbID string) error {
	switch kind {
	case KindAccount:
		return s.SyncAccountByID(ctx, qbID)
	case KindCustomer:
		return s.SyncCustomerByID(ctx, qbID)
	case KindSupplier:
		return s.SyncSupplierByID(ctx, qbID)
	case KindItem:
		return s.SyncItemByID(ctx, qbID)
	case KindInvoice:
		return s.SyncInvoiceByID(ctx, qbID)
	case KindBill:
		return s.SyncBillByID(ctx, qbID)
	case KindPayment:
		return s.SyncPaymentByID(ctx, qbID)
	case KindJournalEntry:
		return s.SyncJournalEntryByID(ctx, qbID)
	case KindEmployee:
		// Single-record employee notifications have nothing to persist.
		return nil
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
}
