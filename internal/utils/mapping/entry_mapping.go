package mapping

import (
	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/bizledger/bizops_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its persistence model.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		EntryDate:       d.EntryDate,
		EntryType:       string(d.EntryType),
		ReferenceType:   string(d.ReferenceType),
		ReferenceNumber: d.ReferenceNumber,
		Description:     d.Description,
		Status:          string(d.Status),
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a persisted entry row to the domain type.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		EntryDate:       m.EntryDate,
		EntryType:       domain.EntryType(m.EntryType),
		ReferenceType:   domain.ReferenceType(m.ReferenceType),
		ReferenceNumber: m.ReferenceNumber,
		Description:     m.Description,
		Status:          domain.EntryStatus(m.Status),
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to its persistence model.
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerLine converts a persisted line row to the domain type.
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
