package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/booksync/internal/books"
	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/books/repository"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	settingsdomain "github.com/smallbiznis/booksync/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -- Stubs --

type apiStub struct {
	responses map[string]quickbooks.QueryResponse
	errs      map[string]error
}

func (a *apiStub) Query(_ context.Context, _ quickbooks.Credentials, query string) (quickbooks.QueryResponse, error) {
	if err, ok := a.errs[query]; ok {
		return quickbooks.QueryResponse{}, err
	}
	return a.responses[query], nil
}

func (a *apiStub) on(query string, resp quickbooks.QueryResponse) {
	a.responses[query] = resp
}

type settingsStub struct {
	err error
}

func (s *settingsStub) Get(context.Context) (settingsdomain.ConnectionSettings, error) {
	return settingsdomain.ConnectionSettings{RealmID: "realm-1"}, nil
}

func (s *settingsStub) Save(context.Context, settingsdomain.ConnectionSettings) error {
	return nil
}

func (s *settingsStub) Credentials(context.Context) (quickbooks.Credentials, error) {
	if s.err != nil {
		return quickbooks.Credentials{}, s.err
	}
	return quickbooks.Credentials{AccessToken: "tok", RealmID: "realm-1", BaseURL: "http://example.test"}, nil
}

func newTestService(t *testing.T) (*Service, *apiStub, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, books.Migrate(db, node, zap.NewNop()))

	api := &apiStub{
		responses: map[string]quickbooks.QueryResponse{},
		errs:      map[string]error{},
	}
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Settings: &settingsStub{},
		API:      api,
	})
	return svc, api, db
}

func createAccount(t *testing.T, svc *Service, db *gorm.DB, name, mappedName, accountType string) booksdomain.Account {
	t.Helper()
	account := booksdomain.Account{
		ID:          svc.genID.Generate(),
		Name:        name,
		MappedName:  mappedName,
		AccountType: accountType,
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

// -- Accounts --

func TestSyncAccounts(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	api.on(quickbooks.SelectAll(quickbooks.EntityAccount), quickbooks.QueryResponse{
		Accounts: []quickbooks.Account{
			{ID: "55", Name: "Consulting Income", AccountType: "Income"},
			{ID: "60", Name: "Travel", AccountType: "Expense", AcctNum: "6100"},
			{ID: "70", Name: "Weird", AccountType: "NonPosting"},
		},
	})

	res, err := svc.SyncAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Len(t, res.Skipped, 1)

	var income booksdomain.Account
	require.NoError(t, db.Where("quick_books_id = ?", "55").First(&income).Error)
	assert.Equal(t, "Consulting Income", income.Name)
	assert.Equal(t, "Consulting Income", income.MappedName)
	assert.Equal(t, "Income", income.AccountType)
	assert.Equal(t, "Income", income.RootType)
	assert.True(t, income.IsGroup)
	assert.Equal(t, "QB-55", income.Number)

	var root booksdomain.Account
	require.NoError(t, db.Where("name = ?", booksdomain.RootAllIncome).First(&root).Error)
	require.NotNil(t, income.ParentID)
	assert.Equal(t, root.ID, *income.ParentID)

	var travel booksdomain.Account
	require.NoError(t, db.Where("quick_books_id = ?", "60").First(&travel).Error)
	assert.Equal(t, "6100", travel.Number)

	// Re-running the same batch is a no-op; existing accounts are passed over
	// silently, only the unmapped one is reported again.
	res, err = svc.SyncAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Len(t, res.Skipped, 1)

	var count int64
	require.NoError(t, db.Model(&booksdomain.Account{}).Where("quick_books_id <> ''").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSyncAccountsParentPlacement(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	api.on(quickbooks.SelectAll(quickbooks.EntityAccount), quickbooks.QueryResponse{
		Accounts: []quickbooks.Account{
			{ID: "1", Name: "Income", AccountType: "Income"},
			{ID: "2", Name: "Design Income", AccountType: "Income", ParentRef: &quickbooks.Ref{Value: "1"}},
			{ID: "3", Name: "Orphan", AccountType: "Income", ParentRef: &quickbooks.Ref{Value: "404"}},
		},
	})

	res, err := svc.SyncAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Len(t, res.Skipped, 1)

	var parent, child booksdomain.Account
	require.NoError(t, db.Where("quick_books_id = ?", "1").First(&parent).Error)
	require.NoError(t, db.Where("quick_books_id = ?", "2").First(&child).Error)

	assert.False(t, child.IsGroup)
	assert.Empty(t, child.RootType)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

// -- Customers --

func TestSyncCustomersCreateThenUpdate(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	query := quickbooks.SelectAll(quickbooks.EntityCustomer)
	api.on(query, quickbooks.QueryResponse{
		Customers: []quickbooks.Customer{
			{ID: "9", DisplayName: "Amy's Bird Sanctuary"},
		},
	})

	res, err := svc.SyncCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	api.on(query, quickbooks.QueryResponse{
		Customers: []quickbooks.Customer{
			{ID: "9", DisplayName: "Amy's Bird Sanctuary", CompanyName: "ABS LLC"},
		},
	})

	res, err = svc.SyncCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	var customer booksdomain.Customer
	require.NoError(t, db.Where("quick_books_id = ?", "9").First(&customer).Error)
	assert.Equal(t, "Company", customer.CustomerType)

	var count int64
	require.NoError(t, db.Model(&booksdomain.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncCustomersAdoptsByName(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	existing := booksdomain.Customer{
		ID:   svc.genID.Generate(),
		Name: "Cool Cars",
	}
	require.NoError(t, db.Create(&existing).Error)

	api.on(quickbooks.SelectAll(quickbooks.EntityCustomer), quickbooks.QueryResponse{
		Customers: []quickbooks.Customer{
			{ID: "12", DisplayName: "Cool Cars"},
		},
	})

	res, err := svc.SyncCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	var adopted booksdomain.Customer
	require.NoError(t, db.First(&adopted, "id = ?", existing.ID).Error)
	assert.Equal(t, "12", adopted.QuickBooksID)
}

// -- Suppliers --

func TestSyncSuppliersDefaultsPayable(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	api.on(quickbooks.SelectAll(quickbooks.EntityVendor), quickbooks.QueryResponse{
		Vendors: []quickbooks.Vendor{
			{ID: "31", DisplayName: "Books by Bessie"},
		},
	})

	res, err := svc.SyncSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	var payable booksdomain.Account
	require.NoError(t, db.Where("account_type = ? AND quick_books_id = ''", booksdomain.AccountTypePayable).First(&payable).Error)

	var supplier booksdomain.Supplier
	require.NoError(t, db.Where("quick_books_id = ?", "31").First(&supplier).Error)
	assert.Equal(t, payable.ID, supplier.PayableAccountID)
	assert.Equal(t, "Books by Bessie", supplier.CompanyName)
}

// -- Items --

func TestSyncItems(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	api.on(quickbooks.SelectAll(quickbooks.EntityItem), quickbooks.QueryResponse{
		Items: []quickbooks.Item{
			{ID: "5", Name: "Rock Fountain", FullyQualifiedName: "Design:Rock Fountain", Type: "Inventory"},
			{ID: "6", Name: "Gardening", Type: "Service"},
		},
	})

	res, err := svc.SyncItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	var fountain booksdomain.Item
	require.NoError(t, db.Where("quick_books_id = ?", "5").First(&fountain).Error)
	assert.Equal(t, "Rock Fountain", fountain.Code)
	assert.Equal(t, "Design:Rock Fountain", fountain.Name)
	assert.True(t, fountain.StockItem)

	var gardening booksdomain.Item
	require.NoError(t, db.Where("quick_books_id = ?", "6").First(&gardening).Error)
	assert.False(t, gardening.StockItem)
}

// -- Invoices --

func TestSyncInvoices(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	customer := booksdomain.Customer{ID: svc.genID.Generate(), Name: "Sonnenschein Family Store", QuickBooksID: "24"}
	require.NoError(t, db.Create(&customer).Error)
	item := booksdomain.Item{ID: svc.genID.Generate(), Code: "Hours", Name: "Hours", QuickBooksID: "2"}
	require.NoError(t, db.Create(&item).Error)

	api.on(quickbooks.SelectAll(quickbooks.EntityInvoice), quickbooks.QueryResponse{
		Invoices: []quickbooks.Invoice{
			{
				ID:          "130",
				TxnDate:     "2026-03-10",
				DueDate:     "2026-03-01",
				CustomerRef: &quickbooks.Ref{Value: "24", Name: "Sonnenschein Family Store"},
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailSalesItem,
						Amount:     decimal.NewFromInt(120),
						SalesItemLineDetail: &quickbooks.SalesItemLineDetail{
							ItemRef: &quickbooks.Ref{Value: "2", Name: "Hours"},
						},
					},
					{
						DetailType: quickbooks.DetailSalesItem,
						Amount:     decimal.NewFromInt(50),
						SalesItemLineDetail: &quickbooks.SalesItemLineDetail{
							ItemRef: &quickbooks.Ref{Value: "404", Name: "Nope"},
						},
					},
				},
			},
		},
	})

	res, err := svc.SyncInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Len(t, res.Skipped, 1)

	var invoice booksdomain.SalesInvoice
	require.NoError(t, db.Preload("Items").Where("quick_books_id = ?", "130").First(&invoice).Error)
	assert.Equal(t, customer.ID, invoice.CustomerID)
	// Due date earlier than the posting date gets clamped forward.
	assert.Equal(t, invoice.PostingDate, invoice.DueDate)

	require.Len(t, invoice.Items, 1)
	line := invoice.Items[0]
	// Zero quantity defaults to one, so the rate equals the line amount.
	assert.True(t, line.Qty.Equal(decimal.NewFromInt(1)), "qty %s", line.Qty)
	assert.True(t, line.Rate.Equal(decimal.NewFromInt(120)), "rate %s", line.Rate)

	// Invoices are create-only; a second run leaves the record alone.
	res, err = svc.SyncInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
}

// -- Bills --

func TestSyncBillsAccountLinesBecomeJournalEntry(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	createAccount(t, svc, db, "Job Expenses", "Job Expenses", "Expense")
	createAccount(t, svc, db, "Utilities", "Utilities", "Expense")
	supplier := booksdomain.Supplier{ID: svc.genID.Generate(), Name: "Norton Lumber", QuickBooksID: "46"}
	require.NoError(t, db.Create(&supplier).Error)

	query := quickbooks.SelectAll(quickbooks.EntityBill)
	api.on(query, quickbooks.QueryResponse{
		Bills: []quickbooks.Bill{
			{
				ID:        "25",
				DocNumber: "1035",
				TxnDate:   "2026-02-01",
				VendorRef: &quickbooks.Ref{Value: "46", Name: "Norton Lumber"},
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailAccountBased,
						Amount:     decimal.NewFromInt(100),
						AccountBasedExpenseLineDetail: &quickbooks.AccountBasedExpenseLineDetail{
							AccountRef: &quickbooks.Ref{Name: "Job Expenses"},
						},
					},
					{
						DetailType: quickbooks.DetailAccountBased,
						Amount:     decimal.NewFromInt(50),
						AccountBasedExpenseLineDetail: &quickbooks.AccountBasedExpenseLineDetail{
							AccountRef: &quickbooks.Ref{Name: "Utilities"},
						},
					},
				},
			},
		},
	})

	res, err := svc.SyncBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	var entry booksdomain.JournalEntry
	require.NoError(t, db.Preload("Lines").Where("quick_books_id = ?", "25").First(&entry).Error)
	require.Len(t, entry.Lines, 3)

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	var creditLine *booksdomain.JournalEntryLine
	for i := range entry.Lines {
		totalDebit = totalDebit.Add(entry.Lines[i].Debit)
		totalCredit = totalCredit.Add(entry.Lines[i].Credit)
		if entry.Lines[i].Credit.IsPositive() {
			creditLine = &entry.Lines[i]
		}
	}
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(150)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(150)))

	require.NotNil(t, creditLine)
	assert.Equal(t, "Supplier", creditLine.PartyType)
	require.NotNil(t, creditLine.PartyID)
	assert.Equal(t, supplier.ID, *creditLine.PartyID)

	// Supplier without an assigned payable account falls back to the seeded one.
	var payable booksdomain.Account
	require.NoError(t, db.Where("account_type = ? AND quick_books_id = ''", booksdomain.AccountTypePayable).First(&payable).Error)
	assert.Equal(t, payable.ID, creditLine.AccountID)

	// Second run rewrites the entry in place instead of duplicating it.
	res, err = svc.SyncBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	var lineCount int64
	require.NoError(t, db.Model(&booksdomain.JournalEntryLine{}).Count(&lineCount).Error)
	assert.EqualValues(t, 3, lineCount)
}

func TestSyncBillsMixedLinesSkipped(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	supplier := booksdomain.Supplier{ID: svc.genID.Generate(), Name: "Norton Lumber", QuickBooksID: "46"}
	require.NoError(t, db.Create(&supplier).Error)

	api.on(quickbooks.SelectAll(quickbooks.EntityBill), quickbooks.QueryResponse{
		Bills: []quickbooks.Bill{
			{
				ID:        "26",
				VendorRef: &quickbooks.Ref{Value: "46"},
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailAccountBased,
						Amount:     decimal.NewFromInt(10),
						AccountBasedExpenseLineDetail: &quickbooks.AccountBasedExpenseLineDetail{
							AccountRef: &quickbooks.Ref{Name: "Job Expenses"},
						},
					},
					{
						DetailType: quickbooks.DetailItemBased,
						Amount:     decimal.NewFromInt(10),
						ItemBasedExpenseLineDetail: &quickbooks.ItemBasedExpenseLineDetail{
							ItemRef: &quickbooks.Ref{Name: "Lumber"},
						},
					},
				},
			},
		},
	})

	res, err := svc.SyncBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "mixed")
}

func TestSyncBillsItemLinesBecomePurchaseInvoice(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	supplier := booksdomain.Supplier{ID: svc.genID.Generate(), Name: "Hicks Hardware", QuickBooksID: "41"}
	require.NoError(t, db.Create(&supplier).Error)
	item := booksdomain.Item{ID: svc.genID.Generate(), Code: "Lumber", Name: "Lumber", QuickBooksID: "8"}
	require.NoError(t, db.Create(&item).Error)

	api.on(quickbooks.SelectAll(quickbooks.EntityBill), quickbooks.QueryResponse{
		Bills: []quickbooks.Bill{
			{
				ID:        "27",
				DocNumber: "2084",
				TxnDate:   "2026-02-05",
				VendorRef: &quickbooks.Ref{Value: "41"},
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailItemBased,
						Amount:     decimal.NewFromInt(75),
						ItemBasedExpenseLineDetail: &quickbooks.ItemBasedExpenseLineDetail{
							ItemRef: &quickbooks.Ref{Value: "8", Name: "Lumber"},
						},
					},
				},
			},
		},
	})

	res, err := svc.SyncBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	var invoice booksdomain.PurchaseInvoice
	require.NoError(t, db.Preload("Items").Where("quick_books_id = ?", "27").First(&invoice).Error)
	assert.Equal(t, supplier.ID, invoice.SupplierID)
	assert.Equal(t, "2084", invoice.BillNo)
	require.Len(t, invoice.Items, 1)
	// No quantity on the line means one unit at the full amount.
	assert.True(t, invoice.Items[0].Qty.Equal(decimal.NewFromInt(1)))
	assert.True(t, invoice.Items[0].Rate.Equal(decimal.NewFromInt(75)))
}

// -- Payments --

func TestSyncPayments(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	customer := booksdomain.Customer{ID: svc.genID.Generate(), Name: "Bill's Windsurf Shop", QuickBooksID: "3"}
	require.NoError(t, db.Create(&customer).Error)

	api.on(quickbooks.SelectAll(quickbooks.EntityPayment), quickbooks.QueryResponse{
		Payments: []quickbooks.Payment{
			{ID: "80", TotalAmt: decimal.NewFromInt(175), TxnDate: "2026-01-20", CustomerRef: &quickbooks.Ref{Value: "3"}},
			{ID: "81", TotalAmt: decimal.NewFromInt(-5), CustomerRef: &quickbooks.Ref{Value: "3"}},
		},
	})

	res, err := svc.SyncPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "non-positive")

	var receivable, bank booksdomain.Account
	require.NoError(t, db.Where("account_type = ? AND quick_books_id = ''", booksdomain.AccountTypeReceivable).First(&receivable).Error)
	require.NoError(t, db.Where("account_type = ? AND quick_books_id = ''", booksdomain.AccountTypeBank).First(&bank).Error)

	var entry booksdomain.PaymentEntry
	require.NoError(t, db.Where("quick_books_id = ?", "80").First(&entry).Error)
	assert.Equal(t, customer.ID, entry.CustomerID)
	assert.Equal(t, receivable.ID, entry.PaidFromID)
	assert.Equal(t, bank.ID, entry.PaidToID)
	assert.Equal(t, "80", entry.ReferenceNo)
	assert.True(t, entry.PaidAmount.Equal(decimal.NewFromInt(175)))
}

// -- Journal entries --

func TestSyncJournalEntries(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	checking := createAccount(t, svc, db, "Checking", "Checking", "Bank")
	misc := createAccount(t, svc, db, "Misc Income", "Misc Income", "Income")

	api.on(quickbooks.SelectAll(quickbooks.EntityJournalEntry), quickbooks.QueryResponse{
		JournalEntries: []quickbooks.JournalEntry{
			{
				ID:      "200",
				TxnDate: "2026-04-01",
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailJournalEntryLine,
						Amount:     decimal.NewFromInt(40),
						JournalEntryLineDetail: &quickbooks.JournalEntryLineDetail{
							AccountRef:  &quickbooks.Ref{Name: "Checking"},
							PostingType: quickbooks.PostingDebit,
						},
					},
					{
						DetailType: quickbooks.DetailJournalEntryLine,
						Amount:     decimal.NewFromInt(40),
						JournalEntryLineDetail: &quickbooks.JournalEntryLineDetail{
							AccountRef:  &quickbooks.Ref{Name: "Misc Income"},
							PostingType: quickbooks.PostingCredit,
						},
					},
				},
			},
			{
				ID: "201",
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailJournalEntryLine,
						Amount:     decimal.NewFromInt(10),
						JournalEntryLineDetail: &quickbooks.JournalEntryLineDetail{
							AccountRef:  &quickbooks.Ref{Name: "Not Mapped Anywhere"},
							PostingType: quickbooks.PostingDebit,
						},
					},
				},
			},
		},
	})

	res, err := svc.SyncJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "no account mapped")

	var entry booksdomain.JournalEntry
	require.NoError(t, db.Preload("Lines").Where("quick_books_id = ?", "200").First(&entry).Error)
	require.Len(t, entry.Lines, 2)

	byAccount := map[snowflake.ID]booksdomain.JournalEntryLine{}
	for _, line := range entry.Lines {
		byAccount[line.AccountID] = line
	}
	assert.True(t, byAccount[checking.ID].Debit.Equal(decimal.NewFromInt(40)))
	assert.True(t, byAccount[checking.ID].Credit.IsZero())
	assert.True(t, byAccount[misc.ID].Credit.Equal(decimal.NewFromInt(40)))
	assert.True(t, byAccount[misc.ID].Debit.IsZero())
}

func TestSyncJournalEntriesUnknownPostingType(t *testing.T) {
	svc, api, db := newTestService(t)
	ctx := context.Background()

	createAccount(t, svc, db, "Checking", "Checking", "Bank")

	api.on(quickbooks.SelectAll(quickbooks.EntityJournalEntry), quickbooks.QueryResponse{
		JournalEntries: []quickbooks.JournalEntry{
			{
				ID: "202",
				Lines: []quickbooks.Line{
					{
						DetailType: quickbooks.DetailJournalEntryLine,
						Amount:     decimal.NewFromInt(25),
						JournalEntryLineDetail: &quickbooks.JournalEntryLineDetail{
							AccountRef:  &quickbooks.Ref{Name: "Checking"},
							PostingType: "Sideways",
						},
					},
				},
			},
		},
	})

	res, err := svc.SyncJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	var entry booksdomain.JournalEntry
	require.NoError(t, db.Preload("Lines").Where("quick_books_id = ?", "202").First(&entry).Error)
	require.Len(t, entry.Lines, 1)
	assert.True(t, entry.Lines[0].Debit.IsZero())
	assert.True(t, entry.Lines[0].Credit.IsZero())
}

// -- Full run --

func TestSyncAllNotConnected(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.settings = &settingsStub{err: settingsdomain.ErrNotConnected}

	_, err := svc.SyncAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, settingsdomain.ErrNotConnected))
}

func TestSyncAllContinuesPastKindFailure(t *testing.T) {
	svc, api, _ := newTestService(t)
	api.errs[quickbooks.SelectAll(quickbooks.EntityAccount)] = errors.New("remote unavailable")
	api.on(quickbooks.SelectAll(quickbooks.EntityCustomer), quickbooks.QueryResponse{
		Customers: []quickbooks.Customer{{ID: "9", DisplayName: "Amy's Bird Sanctuary"}},
	})

	results, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 8)

	assert.Len(t, results[0].Skipped, 1)
	assert.Equal(t, 1, results[1].Created)
}
