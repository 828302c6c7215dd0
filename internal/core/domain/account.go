package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a chart-of-accounts entry. Ledger lines reference accounts by
// ID only; the ledger core never resolves them.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary Key (e.g., UUID)
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft delete flag
	AuditFields
}
