package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a posted ledger entry row.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryDate       time.Time       `db:"entry_date"`
	EntryType       string          `db:"entry_type"`
	ReferenceType   string          `db:"reference_type"`
	ReferenceNumber string          `db:"reference_number"`
	Description     string          `db:"description"`
	Status          string          `db:"status"`
	TotalDebit      decimal.Decimal `db:"total_debit"`
	TotalCredit     decimal.Decimal `db:"total_credit"`
	AuditFields
}

// LedgerLine represents a single line row belonging to a ledger entry.
type LedgerLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
	AuditFields
}
