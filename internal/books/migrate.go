package books

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/booksync/internal/books/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates the local record tables and seeds the fixed chart-of-account
// scaffolding: the five root group buckets plus the default leaf accounts the
// sync engine falls back to (payable, receivable, bank, expense). Seeding is
// idempotent.
func Migrate(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	err := db.AutoMigrate(
		&domain.Account{},
		&domain.Customer{},
		&domain.Supplier{},
		&domain.Item{},
		&domain.SalesInvoice{},
		&domain.SalesInvoiceItem{},
		&domain.PurchaseInvoice{},
		&domain.PurchaseInvoiceItem{},
		&domain.PaymentEntry{},
		&domain.JournalEntry{},
		&domain.JournalEntryLine{},
	)
	if err != nil {
		return err
	}
	return Seed(context.Background(), db, genID, log)
}

type seedAccount struct {
	Name        string
	RootType    string
	AccountType string
	IsGroup     bool
	ParentName  string
}

var seedAccounts = []seedAccount{
	{Name: domain.RootAllAssets, RootType: "Asset", IsGroup: true},
	{Name: domain.RootAllLiabilities, RootType: "Liability", IsGroup: true},
	{Name: domain.RootAllEquity, RootType: "Equity", IsGroup: true},
	{Name: domain.RootAllIncome, RootType: "Income", IsGroup: true},
	{Name: domain.RootAllExpenses, RootType: "Expense", IsGroup: true},

	{Name: "Accounts Payable", RootType: "Liability", AccountType: domain.AccountTypePayable, ParentName: domain.RootAllLiabilities},
	{Name: "Accounts Receivable", RootType: "Asset", AccountType: domain.AccountTypeReceivable, ParentName: domain.RootAllAssets},
	{Name: "Bank", RootType: "Asset", AccountType: domain.AccountTypeBank, ParentName: domain.RootAllAssets},
	{Name: "Miscellaneous Expenses", RootType: "Expense", AccountType: domain.AccountTypeExpense, ParentName: domain.RootAllExpenses},
}

func Seed(ctx context.Context, db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	byName := map[string]snowflake.ID{}

	for _, seed := range seedAccounts {
		var existing domain.Account
		err := db.WithContext(ctx).Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			byName[seed.Name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		account := domain.Account{
			ID:          genID.Generate(),
			Name:        seed.Name,
			RootType:    seed.RootType,
			AccountType: seed.AccountType,
			IsGroup:     seed.IsGroup,
		}
		if seed.ParentName != "" {
			parentID := byName[seed.ParentName]
			account.ParentID = &parentID
		}
		if err := db.WithContext(ctx).Create(&account).Error; err != nil {
			return err
		}
		byName[seed.Name] = account.ID
		log.Info("seeded account", zap.String("name", seed.Name))
	}

	return nil
}
