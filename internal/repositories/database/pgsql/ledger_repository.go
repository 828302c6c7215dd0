package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizledger/bizops_backend/internal/apperrors"
	"github.com/bizledger/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizops_backend/internal/core/ports/repositories"
	"github.com/bizledger/bizops_backend/internal/models"
	"github.com/bizledger/bizops_backend/internal/utils/mapping"
	"github.com/bizledger/bizops_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry and line data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// SaveEntry stores an entry and its lines within a single DB transaction so a
// partially written entry can never appear in the ledger.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction is committed

	modelEntry := mapping.ToModelLedgerEntry(entry)
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, entry_date, entry_type, reference_type, reference_number,
			description, status, total_debit, total_credit,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.EntryType,
		modelEntry.ReferenceType,
		modelEntry.ReferenceNumber,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry with ID %s already exists", apperrors.ErrDuplicate, modelEntry.EntryID)
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (
			line_id, entry_id, account_id, debit_amount, credit_amount, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelLedgerLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry and all of its lines.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, []domain.LedgerLine, error) {
	entryQuery := `
		SELECT entry_id, entry_date, entry_type, reference_type, reference_number,
		       description, status, total_debit, total_credit,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE entry_id = $1;
	`
	var modelEntry models.LedgerEntry
	err := r.Pool.QueryRow(ctx, entryQuery, entryID).Scan(
		&modelEntry.EntryID,
		&modelEntry.EntryDate,
		&modelEntry.EntryType,
		&modelEntry.ReferenceType,
		&modelEntry.ReferenceNumber,
		&modelEntry.Description,
		&modelEntry.Status,
		&modelEntry.TotalDebit,
		&modelEntry.TotalCredit,
		&modelEntry.CreatedAt,
		&modelEntry.CreatedBy,
		&modelEntry.LastUpdatedAt,
		&modelEntry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+entryID, err)
	}

	lineQuery := `
		SELECT line_id, entry_id, account_id, debit_amount, credit_amount, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var modelLine models.LedgerLine
		err := rows.Scan(
			&modelLine.LineID,
			&modelLine.EntryID,
			&modelLine.AccountID,
			&modelLine.DebitAmount,
			&modelLine.CreditAmount,
			&modelLine.Description,
			&modelLine.CreatedAt,
			&modelLine.CreatedBy,
			&modelLine.LastUpdatedAt,
			&modelLine.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, mapping.ToDomainLedgerLine(modelLine))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(modelEntry)
	return &domainEntry, lines, nil
}

// ListEntries retrieves a paginated page of posted entries within a date
// range, newest first, using token-based pagination. The ordering must stay
// stable across pages: entry_date DESC plus created_at DESC as tie-breaker.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, from, to time.Time, filter *domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 25
	}
	// Fetch one extra row to learn whether another page exists.
	fetchLimit := limit + 1

	query := `
		SELECT e.entry_id, e.entry_date, e.entry_type, e.reference_type, e.reference_number,
		       e.description, e.status, e.total_debit, e.total_credit,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM ledger_entries e
		WHERE e.entry_date BETWEEN $1 AND $2 AND e.status = 'POSTED'
	`
	args := []interface{}{from, to}

	if filter != nil {
		if filter.ReferenceType != nil {
			args = append(args, string(*filter.ReferenceType))
			query += " AND e.reference_type = $" + strconv.Itoa(len(args))
		}
		if filter.AccountID != nil {
			args = append(args, *filter.AccountID)
			query += ` AND EXISTS (
				SELECT 1 FROM ledger_lines l
				WHERE l.entry_id = e.entry_id AND l.account_id = $` + strconv.Itoa(len(args)) + `)`
		}
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += " AND (e.entry_date, e.created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY e.entry_date DESC, e.created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	modelEntries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.EntryType,
			&m.ReferenceType,
			&m.ReferenceNumber,
			&m.Description,
			&m.Status,
			&m.TotalDebit,
			&m.TotalCredit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var newNextToken *string
	if len(modelEntries) == fetchLimit {
		// The extra row belongs to the next page; cut it and build the cursor
		// from the last row actually returned.
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	entries := make([]domain.LedgerEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainLedgerEntry(m)
	}
	return entries, newNextToken, nil
}

// GetFinancialMetrics aggregates the figures for a date range in one query.
// Sales come from credits on sale and invoice entries, purchases from debits
// on purchase entries, expenses from debits on expense and purchase entries.
// Draft invoices count as pending.
func (r *PgxLedgerRepository) GetFinancialMetrics(ctx context.Context, from, to time.Time) (*domain.FinancialMetrics, error) {
	query := `
		SELECT
			COALESCE(SUM(total_credit) FILTER (WHERE status = 'POSTED' AND reference_type IN ('SALE', 'INVOICE')), 0) AS total_sales,
			COALESCE(SUM(total_debit)  FILTER (WHERE status = 'POSTED' AND reference_type = 'PURCHASE'), 0) AS total_purchases,
			COALESCE(SUM(total_debit)  FILTER (WHERE status = 'POSTED' AND reference_type IN ('EXPENSE', 'PURCHASE')), 0) AS expenses,
			COUNT(*)                   FILTER (WHERE status = 'DRAFT' AND reference_type = 'INVOICE') AS pending_invoices,
			COALESCE(SUM(total_credit) FILTER (WHERE status = 'DRAFT' AND reference_type = 'INVOICE'), 0) AS pending_amount
		FROM ledger_entries
		WHERE entry_date BETWEEN $1 AND $2;
	`

	var metrics domain.FinancialMetrics
	err := r.Pool.QueryRow(ctx, query, from, to).Scan(
		&metrics.TotalSales,
		&metrics.TotalPurchases,
		&metrics.Expenses,
		&metrics.PendingInvoices,
		&metrics.PendingAmount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate financial metrics", err)
	}

	metrics.NetProfit = metrics.TotalSales.Sub(metrics.Expenses)
	return &metrics, nil
}
