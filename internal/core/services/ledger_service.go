package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizops_backend/internal/apperrors"
	"github.com/bizledger/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/dto"
	"github.com/bizledger/bizops_backend/internal/utils/accounting"
)

const (
	defaultListLimit = 25
	maxListLimit     = 100
)

// ValidateDraftEntry checks a draft entry against the submission rules and
// returns a field-keyed map of messages. An empty map means the draft is
// valid. The check is pure: every problem is reported at once so the entry
// form can annotate all offending fields in one pass.
func ValidateDraftEntry(draft domain.DraftEntry) map[string]string {
	errs := make(map[string]string)

	if draft.Date.IsZero() {
		errs["date"] = "date is required"
	}
	if draft.Description == "" {
		errs["description"] = "description is required"
	}
	if len(draft.Lines) < 2 {
		errs["lines"] = "entry must have at least two lines"
	}

	for i, line := range draft.Lines {
		if line.AccountID == "" {
			errs[fmt.Sprintf("line%dAccount", i)] = "account is required"
		}

		amountKey := fmt.Sprintf("line%dAmount", i)
		debitSet := !line.DebitAmount.IsZero()
		creditSet := !line.CreditAmount.IsZero()
		switch {
		case line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative():
			errs[amountKey] = "amount cannot be negative"
		case !debitSet && !creditSet:
			errs[amountKey] = "amount required"
		case debitSet && creditSet:
			errs[amountKey] = "cannot have both debit and credit"
		}
	}

	// Balance check runs on the grand totals regardless of per-line problems
	// so an unbalanced entry is flagged even while lines are incomplete.
	if !accounting.IsBalanced(draft.Lines) {
		errs["balance"] = fmt.Sprintf("entry does not balance: debits %s, credits %s",
			draft.TotalDebits().String(), draft.TotalCredits().String())
	}

	return errs
}

// ledgerService provides the core ledger entry operations.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerService interface
var _ portssvc.LedgerService = (*ledgerService)(nil)

// ValidateDraft implements portssvc.LedgerService.
func (s *ledgerService) ValidateDraft(draft domain.DraftEntry) map[string]string {
	return ValidateDraftEntry(draft)
}

// CreateEntry validates the draft and persists the entry with its lines as an
// atomic unit. The draft is discarded by the caller on success; entries are
// immutable once accepted.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	draft := req.ToDraftEntry()

	if fieldErrs := ValidateDraftEntry(draft); len(fieldErrs) > 0 {
		s.LogDebug(ctx, "Draft entry failed validation", slog.Int("error_count", len(fieldErrs)))
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryTypeManualAdjustment
	}
	referenceType := req.ReferenceType
	if referenceType == "" {
		referenceType = domain.ReferenceOther
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entry := domain.LedgerEntry{
		EntryID:         entryID,
		EntryDate:       draft.Date,
		EntryType:       entryType,
		ReferenceType:   referenceType,
		ReferenceNumber: draft.ReferenceNumber,
		Description:     draft.Description,
		Status:          domain.EntryStatusPosted,
		TotalDebit:      draft.TotalDebits(),
		TotalCredit:     draft.TotalCredits(),
		AuditFields:     audit,
	}

	lines := make([]domain.LedgerLine, len(draft.Lines))
	for i, draftLine := range draft.Lines {
		description := draftLine.Description
		if description == "" {
			description = draft.Description
		}
		lines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    draftLine.AccountID,
			DebitAmount:  draftLine.DebitAmount,
			CreditAmount: draftLine.CreditAmount,
			Description:  description,
			AuditFields:  audit,
		}
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry created",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)),
		slog.String("total_debit", entry.TotalDebit.String()))
	return &entry, nil
}

// GetEntryByID retrieves a posted entry and its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, []domain.LedgerLine, error) {
	entry, lines, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return entry, lines, nil
}

// ListEntries retrieves posted entries for a date range with pagination.
func (s *ledgerService) ListEntries(ctx context.Context, from, to time.Time, filter *domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, token, err := s.ledgerRepo.ListEntries(ctx, from, to, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, token, nil
}

// GetFinancialMetrics retrieves aggregate figures for a date range.
func (s *ledgerService) GetFinancialMetrics(ctx context.Context, from, to time.Time) (*domain.FinancialMetrics, error) {
	metrics, err := s.ledgerRepo.GetFinancialMetrics(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve financial metrics",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve financial metrics: %w", err)
	}
	return metrics, nil
}
