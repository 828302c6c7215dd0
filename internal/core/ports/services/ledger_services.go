package services

import (
	"context"
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/bizledger/bizops_backend/internal/dto"
)

// LedgerService defines operations on manually created ledger entries.
type LedgerService interface {
	// ValidateDraft checks a draft entry and returns a field-keyed error map.
	// An empty map means the draft may be submitted.
	ValidateDraft(draft domain.DraftEntry) map[string]string

	// CreateEntry validates the draft and persists it atomically. A failed
	// validation returns an apperrors.ValidationError.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// GetEntryByID returns one posted entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, []domain.LedgerLine, error)

	// ListEntries returns posted entries for a date range with pagination.
	ListEntries(ctx context.Context, from, to time.Time, filter *domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// GetFinancialMetrics returns the aggregate dashboard figures for a range.
	GetFinancialMetrics(ctx context.Context, from, to time.Time) (*domain.FinancialMetrics, error)
}
