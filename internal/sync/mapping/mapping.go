// Package mapping translates QuickBooks account classifications into the
// local chart-of-accounts vocabulary.
package mapping

type accountMapping struct {
	AccountType string
	RootType    string
}

var accountTypes = map[string]accountMapping{
	"Accounts Receivable":     {"Receivable", "Asset"},
	"Accounts Payable":        {"Payable", "Liability"},
	"Bank":                    {"Bank", "Asset"},
	"Credit Card":             {"Credit Card", "Liability"},
	"Fixed Asset":             {"Fixed Asset", "Asset"},
	"Other Asset":             {"Current Asset", "Asset"},
	"Other Current Asset":     {"Current Asset", "Asset"},
	"Other Current Liability": {"Current Liability", "Liability"},
	"Long Term Liability":     {"Long Term Liability", "Liability"},
	"Equity":                  {"Equity", "Equity"},
	"Income":                  {"Income", "Income"},
	"Other Income":            {"Income", "Income"},
	"Expense":                 {"Expense", "Expense"},
	"Other Expense":           {"Expense", "Expense"},
	"Cost of Goods Sold":      {"Cost of Goods Sold", "Expense"},
}

// AccountType maps a QuickBooks AccountType/AccountSubType pair onto the
// local account type and root type. The table keys on the primary type only;
// the subtype is accepted for callers that carry it. Unknown input types
// return ok=false, which callers must treat as "cannot place this account",
// not as a failure.
func AccountType(externalType, _ string) (accountType, rootType string, ok bool) {
	m, ok := accountTypes[externalType]
	if !ok {
		return "", "", false
	}
	return m.AccountType, m.RootType, true
}
