package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
)

// LedgerReaderRepository supplies posted entries and aggregate metrics for a
// date range. The reporting side of the application depends only on this.
type LedgerReaderRepository interface {
	// ListEntries returns posted entries for the range, newest first, with
	// token-based pagination. A nil filter means no narrowing.
	ListEntries(ctx context.Context, from, to time.Time, filter *domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntryByID returns one entry and its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, []domain.LedgerLine, error)

	// GetFinancialMetrics returns the aggregate figures for the range.
	GetFinancialMetrics(ctx context.Context, from, to time.Time) (*domain.FinancialMetrics, error)
}

// LedgerWriterRepository persists new ledger entries.
type LedgerWriterRepository interface {
	// SaveEntry stores the entry and all of its lines atomically: either the
	// whole entry is recorded or nothing is.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) error
}

// LedgerRepository is the full ledger storage contract.
type LedgerRepository interface {
	LedgerReaderRepository
	LedgerWriterRepository
}
