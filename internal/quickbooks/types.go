package quickbooks

import "github.com/shopspring/decimal"

// Entity names as QuickBooks spells them in queries and webhook payloads.
const (
	EntityAccount      = "Account"
	EntityCustomer     = "Customer"
	EntityVendor       = "Vendor"
	EntityItem         = "Item"
	EntityInvoice      = "Invoice"
	EntityBill         = "Bill"
	EntityPayment      = "Payment"
	EntityJournalEntry = "JournalEntry"
	EntityEmployee     = "Employee"
)

// Line detail type discriminators.
const (
	DetailSalesItem        = "SalesItemLineDetail"
	DetailAccountBased     = "AccountBasedExpenseLineDetail"
	DetailItemBased        = "ItemBasedExpenseLineDetail"
	DetailJournalEntryLine = "JournalEntryLineDetail"
)

// Journal posting types.
const (
	PostingDebit  = "Debit"
	PostingCredit = "Credit"
)

// Ref is QuickBooks' {value, name} reference pair.
type Ref struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

type Address struct {
	Address string `json:"Address"`
}

type Phone struct {
	FreeFormNumber string `json:"FreeFormNumber"`
}

type Account struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	AcctNum        string `json:"AcctNum"`
	AccountType    string `json:"AccountType"`
	AccountSubType string `json:"AccountSubType"`
	ParentRef      *Ref   `json:"ParentRef"`
}

type Customer struct {
	ID               string   `json:"Id"`
	DisplayName      string   `json:"DisplayName"`
	CompanyName      string   `json:"CompanyName"`
	PrimaryEmailAddr *Address `json:"PrimaryEmailAddr"`
	PrimaryPhone     *Phone   `json:"PrimaryPhone"`
}

type Vendor struct {
	ID               string   `json:"Id"`
	DisplayName      string   `json:"DisplayName"`
	CompanyName      string   `json:"CompanyName"`
	PrimaryEmailAddr *Address `json:"PrimaryEmailAddr"`
	PrimaryPhone     *Phone   `json:"PrimaryPhone"`
}

type Item struct {
	ID                 string `json:"Id"`
	Name               string `json:"Name"`
	FullyQualifiedName string `json:"FullyQualifiedName"`
	Description        string `json:"Description"`
	Type               string `json:"Type"`
}

type SalesItemLineDetail struct {
	ItemRef *Ref            `json:"ItemRef"`
	Qty     decimal.Decimal `json:"Qty"`
}

type AccountBasedExpenseLineDetail struct {
	AccountRef *Ref `json:"AccountRef"`
}

type ItemBasedExpenseLineDetail struct {
	ItemRef *Ref            `json:"ItemRef"`
	Qty     decimal.Decimal `json:"Qty"`
}

type JournalEntryLineDetail struct {
	AccountRef  *Ref   `json:"AccountRef"`
	PostingType string `json:"PostingType"`
}

// Line is the shared transaction line shape; exactly one detail variant is
// populated, selected by DetailType.
type Line struct {
	DetailType                    string                         `json:"DetailType"`
	Amount                        decimal.Decimal                `json:"Amount"`
	Description                   string                         `json:"Description"`
	SalesItemLineDetail           *SalesItemLineDetail           `json:"SalesItemLineDetail"`
	AccountBasedExpenseLineDetail *AccountBasedExpenseLineDetail `json:"AccountBasedExpenseLineDetail"`
	ItemBasedExpenseLineDetail    *ItemBasedExpenseLineDetail    `json:"ItemBasedExpenseLineDetail"`
	JournalEntryLineDetail        *JournalEntryLineDetail        `json:"JournalEntryLineDetail"`
}

type Invoice struct {
	ID          string `json:"Id"`
	DocNumber   string `json:"DocNumber"`
	TxnDate     string `json:"TxnDate"`
	DueDate     string `json:"DueDate"`
	CustomerRef *Ref   `json:"CustomerRef"`
	Lines       []Line `json:"Line"`
}

type Bill struct {
	ID        string `json:"Id"`
	DocNumber string `json:"DocNumber"`
	TxnDate   string `json:"TxnDate"`
	DueDate   string `json:"DueDate"`
	VendorRef *Ref   `json:"VendorRef"`
	Lines     []Line `json:"Line"`
}

type Payment struct {
	ID          string          `json:"Id"`
	TotalAmt    decimal.Decimal `json:"TotalAmt"`
	TxnDate     string          `json:"TxnDate"`
	CustomerRef *Ref            `json:"CustomerRef"`
}

type JournalEntry struct {
	ID      string `json:"Id"`
	TxnDate string `json:"TxnDate"`
	DueDate string `json:"DueDate"`
	Lines   []Line `json:"Line"`
}

type Employee struct {
	ID          string `json:"Id"`
	DisplayName string `json:"DisplayName"`
}

// QueryResponse is the body of {"QueryResponse": {...}}; only the slice
// matching the queried entity is populated.
type QueryResponse struct {
	Accounts       []Account      `json:"Account"`
	Customers      []Customer     `json:"Customer"`
	Vendors        []Vendor       `json:"Vendor"`
	Items          []Item         `json:"Item"`
	Invoices       []Invoice      `json:"Invoice"`
	Bills          []Bill         `json:"Bill"`
	Payments       []Payment      `json:"Payment"`
	JournalEntries []JournalEntry `json:"JournalEntry"`
	Employees      []Employee     `json:"Employee"`
}

type CompanyInfo struct {
	CompanyName string `json:"CompanyName"`
	Country     string `json:"Country"`
}
