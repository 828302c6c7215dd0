package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a manually created ledger entry.
type EntryType string

const (
	EntryTypeManualAdjustment EntryType = "MANUAL_ADJUSTMENT"
	EntryTypeCorrection       EntryType = "CORRECTION"
	EntryTypeReversal         EntryType = "REVERSAL"
	EntryTypeOpeningBalance   EntryType = "OPENING_BALANCE"
	EntryTypeClosingEntry     EntryType = "CLOSING_ENTRY"
)

// EntryStatus indicates the state of a ledger entry.
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "DRAFT"
	EntryStatusPosted EntryStatus = "POSTED"
)

// ReferenceType tags a ledger entry with the business document it came from.
// The set is open: filters accept arbitrary values, these are the known ones.
type ReferenceType string

const (
	ReferenceSale     ReferenceType = "SALE"
	ReferencePurchase ReferenceType = "PURCHASE"
	ReferenceExpense  ReferenceType = "EXPENSE"
	ReferenceInvoice  ReferenceType = "INVOICE"
	ReferenceOther    ReferenceType = "OTHER"
)

// DraftLine is one side of an unsubmitted transaction. Exactly one of
// DebitAmount/CreditAmount must be nonzero for the line to be valid.
type DraftLine struct {
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"` // defaults to the entry description when empty
}

// DraftEntry is an unposted manual transaction built by a user. It lives only
// until the single submission call and is never mutated afterwards.
type DraftEntry struct {
	Date            time.Time   `json:"date"`
	EntryType       EntryType   `json:"entryType"`
	ReferenceNumber string      `json:"referenceNumber"`
	Description     string      `json:"description"`
	Lines           []DraftLine `json:"lines"`
}

// TotalDebits sums the debit side of every line.
func (d DraftEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Lines {
		total = total.Add(line.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit side of every line.
func (d DraftEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Lines {
		total = total.Add(line.CreditAmount)
	}
	return total
}

// LedgerLine is a persisted line of a posted entry.
type LedgerLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	AuditFields
}

// LedgerEntry is the read-side record of a posted transaction. The storage
// layer owns it; readers must treat it as immutable.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	EntryDate       time.Time       `json:"entryDate"`
	EntryType       EntryType       `json:"entryType"`
	ReferenceType   ReferenceType   `json:"referenceType"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	Status          EntryStatus     `json:"status"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	AuditFields
}

// EntryFilter narrows a ledger listing.
type EntryFilter struct {
	ReferenceType *ReferenceType
	AccountID     *string
}
