package dto

import (
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit/credit line of a draft entry.
type CreateEntryLineRequest struct {
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// CreateEntryRequest is the payload for creating (or dry-run validating) a
// manual ledger entry. Field-level validation is done by the ledger service
// so that the error map covers every problem at once, not by binding tags.
type CreateEntryRequest struct {
	Date            time.Time                `json:"date"`
	EntryType       domain.EntryType         `json:"entryType"`
	ReferenceType   domain.ReferenceType     `json:"referenceType"`
	ReferenceNumber string                   `json:"referenceNumber"`
	Description     string                   `json:"description"`
	Lines           []CreateEntryLineRequest `json:"lines"`
}

// ToDraftEntry converts the request into the domain draft the validator consumes.
func (r CreateEntryRequest) ToDraftEntry() domain.DraftEntry {
	lines := make([]domain.DraftLine, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = domain.DraftLine{
			AccountID:    line.AccountID,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			Description:  line.Description,
		}
	}
	return domain.DraftEntry{
		Date:            r.Date,
		EntryType:       r.EntryType,
		ReferenceNumber: r.ReferenceNumber,
		Description:     r.Description,
		Lines:           lines,
	}
}

// ValidateEntryResponse reports the outcome of a dry-run validation.
type ValidateEntryResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// LedgerLineResponse defines the data returned for a single entry line.
type LedgerLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// LedgerEntryResponse defines the data returned for a posted entry.
type LedgerEntryResponse struct {
	EntryID         string          `json:"entryID"`
	EntryDate       time.Time       `json:"entryDate"`
	EntryType       string          `json:"entryType"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// GetEntryResponse combines an entry with its lines.
type GetEntryResponse struct {
	Entry LedgerEntryResponse  `json:"entry"`
	Lines []LedgerLineResponse `json:"lines"`
}

// ListEntriesResponse is a page of entries plus the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		EntryDate:       e.EntryDate,
		EntryType:       string(e.EntryType),
		ReferenceType:   string(e.ReferenceType),
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		Status:          string(e.Status),
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ToLedgerLineResponses converts a slice of lines.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	responses := make([]LedgerLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = LedgerLineResponse{
			LineID:       line.LineID,
			AccountID:    line.AccountID,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			Description:  line.Description,
		}
	}
	return responses
}

// MetricsResponse exposes the aggregate dashboard figures for a range.
type MetricsResponse struct {
	FromDate        string          `json:"fromDate"`
	ToDate          string          `json:"toDate"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalPurchases  decimal.Decimal `json:"totalPurchases"`
	Expenses        decimal.Decimal `json:"expenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	PendingInvoices int             `json:"pendingInvoices"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
}

// ToMetricsResponse converts domain metrics to the response DTO.
func ToMetricsResponse(m *domain.FinancialMetrics, from, to time.Time) MetricsResponse {
	return MetricsResponse{
		FromDate:        from.Format("2006-01-02"),
		ToDate:          to.Format("2006-01-02"),
		TotalSales:      m.TotalSales,
		TotalPurchases:  m.TotalPurchases,
		Expenses:        m.Expenses,
		NetProfit:       m.NetProfit,
		PendingInvoices: m.PendingInvoices,
		PendingAmount:   m.PendingAmount,
	}
}
