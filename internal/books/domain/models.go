package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Root group account names. Accounts without a parent reference are grouped
// under one of these five buckets by root type.
const (
	RootAllAssets      = "All Assets"
	RootAllLiabilities = "All Liabilities"
	RootAllEquity      = "All Equity"
	RootAllIncome      = "All Income"
	RootAllExpenses    = "All Expenses"
)

// Account types carried by the default leaf accounts the sync engine falls
// back to when a record does not name one.
const (
	AccountTypePayable    = "Payable"
	AccountTypeReceivable = "Receivable"
	AccountTypeBank       = "Bank"
	AccountTypeExpense    = "Expense"
)

type Account struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"not null;index" json:"name"`
	Number       string        `json:"number,omitempty"`
	AccountType  string        `json:"account_type,omitempty"`
	RootType     string        `json:"root_type,omitempty"`
	IsGroup      bool          `gorm:"not null;default:false" json:"is_group"`
	ParentID     *snowflake.ID `gorm:"index" json:"parent_id,omitempty"`
	MappedName   string        `gorm:"index" json:"mapped_name,omitempty"`
	QuickBooksID string        `gorm:"index:ux_accounts_qb_id,unique,where:quick_books_id <> ''" json:"quickbooks_id,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type Customer struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"not null;index" json:"name"`
	CustomerType string            `json:"customer_type,omitempty"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	QuickBooksID string            `gorm:"index:ux_customers_qb_id,unique,where:quick_books_id <> ''" json:"quickbooks_id"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type Supplier struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	Name             string       `gorm:"not null;index" json:"name"`
	CompanyName      string       `json:"company_name,omitempty"`
	Email            string       `json:"email,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	PayableAccountID snowflake.ID `json:"payable_account_id"`
	QuickBooksID     string       `gorm:"index:ux_suppliers_qb_id,unique,where:quick_books_id <> ''" json:"quickbooks_id"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type Item struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"not null;index" json:"code"`
	Name         string       `gorm:"not null;index" json:"name"`
	Description  string       `json:"description,omitempty"`
	StockItem    bool         `gorm:"not null;default:false" json:"stock_item"`
	QuickBooksID string       `gorm:"index:ux_items_qb_id,unique,where:quick_books_id <> ''" json:"quickbooks_id"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type SalesInvoice struct {
	ID           snowflake.ID       `gorm:"primaryKey" json:"id"`
	CustomerID   snowflake.ID       `gorm:"not null;index" json:"customer_id"`
	PostingDate  time.Time          `gorm:"not null" json:"posting_date"`
	DueDate      time.Time          `json:"due_date"`
	QuickBooksID string             `gorm:"uniqueIndex" json:"quickbooks_id"`
	Items        []SalesInvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	CreatedAt    time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type SalesInvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	ItemID      snowflake.ID    `gorm:"not null" json:"item_id"`
	Qty         decimal.Decimal `gorm:"type:numeric;not null" json:"qty"`
	Rate        decimal.Decimal `gorm:"type:numeric;not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Description string          `json:"description,omitempty"`
}

type PurchaseInvoice struct {
	ID           snowflake.ID          `gorm:"primaryKey" json:"id"`
	SupplierID   snowflake.ID          `gorm:"not null;index" json:"supplier_id"`
	PostingDate  time.Time             `gorm:"not null" json:"posting_date"`
	BillDate     time.Time             `json:"bill_date"`
	DueDate      time.Time             `json:"due_date"`
	BillNo       string                `json:"bill_no,omitempty"`
	QuickBooksID string                `gorm:"uniqueIndex" json:"quickbooks_id"`
	Items        []PurchaseInvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	CreatedAt    time.Time             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type PurchaseInvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	ItemID      snowflake.ID    `gorm:"not null" json:"item_id"`
	Qty         decimal.Decimal `gorm:"type:numeric;not null" json:"qty"`
	Rate        decimal.Decimal `gorm:"type:numeric;not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Description string          `json:"description,omitempty"`
}

type PaymentEntry struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	CustomerID   snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	PostingDate  time.Time       `gorm:"not null" json:"posting_date"`
	PaidAmount   decimal.Decimal `gorm:"type:numeric;not null" json:"paid_amount"`
	PaidFromID   snowflake.ID    `gorm:"not null" json:"paid_from_id"`
	PaidToID     snowflake.ID    `gorm:"not null" json:"paid_to_id"`
	ReferenceNo  string          `json:"reference_no,omitempty"`
	QuickBooksID string          `gorm:"uniqueIndex" json:"quickbooks_id"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type JournalEntry struct {
	ID           snowflake.ID       `gorm:"primaryKey" json:"id"`
	PostingDate  time.Time          `gorm:"not null" json:"posting_date"`
	ChequeNo     string             `json:"cheque_no,omitempty"`
	ChequeDate   time.Time          `json:"cheque_date"`
	Remark       string             `json:"remark,omitempty"`
	QuickBooksID string             `gorm:"uniqueIndex" json:"quickbooks_id"`
	Lines        []JournalEntryLine `gorm:"foreignKey:EntryID" json:"lines,omitempty"`
	CreatedAt    time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type JournalEntryLine struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	EntryID   snowflake.ID    `gorm:"not null;index" json:"entry_id"`
	AccountID snowflake.ID    `gorm:"not null" json:"account_id"`
	Debit     decimal.Decimal `gorm:"type:numeric;not null" json:"debit"`
	Credit    decimal.Decimal `gorm:"type:numeric;not null" json:"credit"`
	PartyType string          `json:"party_type,omitempty"`
	PartyID   *snowflake.ID   `json:"party_id,omitempty"`
	Remark    string          `json:"remark,omitempty"`
}
