package services

import (
	"context"
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementService builds profit and loss statements and their period views.
type StatementService interface {
	// BuildStatement derives one statement from pre-aggregated metrics and
	// the raw entries of the same period. Pure, no fetching.
	BuildStatement(metrics domain.FinancialMetrics, entries []domain.LedgerEntry, periodLabel string) domain.FinancialStatement

	// MonthlyBreakdown returns one row per calendar month overlapping the
	// range, in chronological order. Months whose fetch fails are omitted.
	MonthlyBreakdown(ctx context.Context, from, to time.Time) ([]domain.MonthlyFigures, error)

	// Comparison contrasts the given net income against the metrics of the
	// period immediately preceding [from, to].
	Comparison(ctx context.Context, from, to time.Time, currentNetIncome decimal.Decimal) (*domain.PeriodComparison, error)

	// ProfitAndLoss fetches the period data and assembles the full statement,
	// optionally attaching the monthly breakdown and the comparison.
	ProfitAndLoss(ctx context.Context, from, to time.Time, includeMonthly, includeComparison bool) (*domain.FinancialStatement, error)
}
