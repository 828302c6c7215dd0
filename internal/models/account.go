package models

// Account represents a chart-of-accounts row as persisted.
type Account struct {
	AccountID   string `db:"account_id"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
