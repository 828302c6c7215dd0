package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxBreakdownMonths bounds the month-stepping loop so a reversed or
// malformed date range can never spin forever.
const maxBreakdownMonths = 120

// entryPageSize is the page size used when collecting the entries of a
// period for statement building.
const entryPageSize = 100

// statementService implements the StatementService interface
type statementService struct {
	BaseService
	ledgerRepo       portsrepo.LedgerReaderRepository
	fetchConcurrency int
}

// StatementServiceOption is a functional option for configuring the statement service
type StatementServiceOption func(*statementService)

// WithFetchConcurrency sets how many per-month metric fetches may run at once.
func WithFetchConcurrency(n int) StatementServiceOption {
	return func(s *statementService) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// NewStatementService creates a new statement service with the provided options
func NewStatementService(repo portsrepo.LedgerReaderRepository, options ...StatementServiceOption) portssvc.StatementService {
	svc := &statementService{
		ledgerRepo:       repo,
		fetchConcurrency: 4,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure statementService implements the StatementService interface
var _ portssvc.StatementService = (*statementService)(nil)

// BuildStatement derives a profit and loss statement from the aggregate
// metrics and the raw entries of one period. Sub-categories the ledger does
// not yet record per line item (inventory, labor, depreciation, interest,
// taxes) stay zero; the formulas still include them so a richer schema can
// populate them without touching the derivation.
func (s *statementService) BuildStatement(metrics domain.FinancialMetrics, entries []domain.LedgerEntry, periodLabel string) domain.FinancialStatement {
	revenue := domain.RevenueSection{
		Sales:            metrics.TotalSales,
		Services:         decimal.Zero,
		OtherIncome:      decimal.Zero,
		DiscountsReturns: decimal.Zero,
	}
	if revenue.Sales.IsZero() {
		revenue.Sales = accounting.SumCreditsByReference(entries, domain.ReferenceSale, domain.ReferenceInvoice)
	}
	revenue.NetRevenue = revenue.Sales.
		Add(revenue.Services).
		Add(revenue.OtherIncome).
		Sub(revenue.DiscountsReturns)

	cogs := domain.CogsSection{
		BeginningInventory:    decimal.Zero,
		Purchases:             metrics.TotalPurchases,
		DirectLabor:           decimal.Zero,
		ManufacturingOverhead: decimal.Zero,
		EndingInventory:       decimal.Zero,
	}
	cogs.TotalCogs = cogs.BeginningInventory.
		Add(cogs.Purchases).
		Add(cogs.DirectLabor).
		Add(cogs.ManufacturingOverhead).
		Sub(cogs.EndingInventory)

	opex := domain.OperatingExpenseSection{
		OtherExpenses: metrics.Expenses,
	}
	if opex.OtherExpenses.IsZero() {
		opex.OtherExpenses = accounting.SumDebitsByReference(entries, domain.ReferenceExpense, domain.ReferencePurchase)
	}
	// The total is always the sum over the fixed category list.
	totalOpex := decimal.Zero
	for _, category := range opex.Categories() {
		totalOpex = totalOpex.Add(category)
	}
	opex.TotalOperatingExpenses = totalOpex

	other := domain.OtherIncomeExpenseSection{}
	other.NetOtherIncomeExpenses = other.InterestIncome.
		Add(other.GainOnAssetSale).
		Sub(other.InterestExpense).
		Sub(other.LossOnAssetSale)

	tax := domain.TaxSection{}
	tax.TotalTaxExpenses = tax.IncomeTaxExpense.Add(tax.OtherTaxes)

	grossProfit := revenue.NetRevenue.Sub(cogs.TotalCogs)
	operatingIncome := grossProfit.Sub(opex.TotalOperatingExpenses)
	earningsBeforeTax := operatingIncome.Add(other.NetOtherIncomeExpenses)
	netIncome := earningsBeforeTax.Sub(tax.TotalTaxExpenses)

	summary := domain.StatementSummary{
		GrossProfit:       grossProfit,
		GrossProfitMargin: accounting.MarginPercent(grossProfit, revenue.NetRevenue),
		OperatingIncome:   operatingIncome,
		OperatingMargin:   accounting.MarginPercent(operatingIncome, revenue.NetRevenue),
		EarningsBeforeTax: earningsBeforeTax,
		NetIncome:         netIncome,
		NetProfitMargin:   accounting.MarginPercent(netIncome, revenue.NetRevenue),
	}

	return domain.FinancialStatement{
		Period:              periodLabel,
		Revenue:             revenue,
		CostOfGoodsSold:     cogs,
		OperatingExpenses:   opex,
		OtherIncomeExpenses: other,
		TaxExpenses:         tax,
		Summary:             summary,
	}
}

// MonthlyBreakdown fetches metrics for every calendar month overlapping
// [from, to] and returns one row per month in chronological order. Fetches
// run concurrently; a failed month is logged and omitted rather than
// aborting the whole breakdown.
func (s *statementService) MonthlyBreakdown(ctx context.Context, from, to time.Time) ([]domain.MonthlyFigures, error) {
	type monthRange struct {
		start time.Time
		end   time.Time
	}

	var months []monthRange
	monthStart := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	for i := 0; i < maxBreakdownMonths && !monthStart.After(to); i++ {
		next := monthStart.AddDate(0, 1, 0)
		months = append(months, monthRange{start: monthStart, end: next.Add(-time.Millisecond)})
		monthStart = next
	}

	// Slots keep the chronological position; failed fetches leave nil holes
	// that are compacted away below, so completion order never matters.
	results := make([]*domain.MonthlyFigures, len(months))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.fetchConcurrency)
	for i, month := range months {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			metrics, err := s.ledgerRepo.GetFinancialMetrics(groupCtx, month.start, month.end)
			if err != nil {
				s.LogError(groupCtx, err, "Skipping month in breakdown",
					slog.String("month", month.start.Format("January 2006")))
				return nil
			}
			results[i] = &domain.MonthlyFigures{
				Month:     month.start.Format("January 2006"),
				Revenue:   metrics.TotalSales,
				Expenses:  metrics.Expenses,
				NetIncome: metrics.NetProfit,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		// Only cancellation reaches here; fetch failures are swallowed above.
		return nil, err
	}

	breakdown := make([]domain.MonthlyFigures, 0, len(results))
	for _, figures := range results {
		if figures != nil {
			breakdown = append(breakdown, *figures)
		}
	}
	return breakdown, nil
}

// Comparison fetches the metrics of the period immediately preceding
// [from, to] and computes growth against the given current net income.
func (s *statementService) Comparison(ctx context.Context, from, to time.Time, currentNetIncome decimal.Decimal) (*domain.PeriodComparison, error) {
	prevFrom, prevTo := previousPeriodBounds(from, to)

	metrics, err := s.ledgerRepo.GetFinancialMetrics(ctx, prevFrom, prevTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve previous period metrics",
			slog.String("from", prevFrom.Format(time.RFC3339)),
			slog.String("to", prevTo.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve previous period metrics: %w", err)
	}

	// Both rates compare the current period's net income against the
	// previous period's figures, matching the legacy report output.
	return &domain.PeriodComparison{
		Previous: domain.PreviousPeriod{
			From:      prevFrom,
			To:        prevTo,
			Revenue:   metrics.TotalSales,
			NetIncome: metrics.NetProfit,
		},
		Growth: domain.PeriodGrowth{
			RevenueGrowth: accounting.GrowthPercent(currentNetIncome, metrics.TotalSales),
			ProfitGrowth:  accounting.GrowthPercent(currentNetIncome, metrics.NetProfit),
		},
	}, nil
}

// ProfitAndLoss assembles the full statement for a period, optionally with
// the monthly breakdown and the previous-period comparison attached. The
// optional views degrade gracefully: their fetch failures leave the view out
// instead of failing the statement.
func (s *statementService) ProfitAndLoss(ctx context.Context, from, to time.Time, includeMonthly, includeComparison bool) (*domain.FinancialStatement, error) {
	metrics, err := s.ledgerRepo.GetFinancialMetrics(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve period metrics",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve period metrics: %w", err)
	}

	entries, err := s.collectEntries(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve period entries")
		return nil, fmt.Errorf("failed to retrieve period entries: %w", err)
	}

	periodLabel := fmt.Sprintf("%s - %s", from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006"))
	statement := s.BuildStatement(*metrics, entries, periodLabel)

	if includeMonthly {
		breakdown, err := s.MonthlyBreakdown(ctx, from, to)
		if err != nil {
			return nil, err // cancellation only
		}
		statement.MonthlyBreakdown = breakdown
	}

	if includeComparison {
		comparison, err := s.Comparison(ctx, from, to, statement.Summary.NetIncome)
		if err != nil {
			s.LogError(ctx, err, "Omitting comparison from statement")
		} else {
			statement.Comparison = comparison
		}
	}

	s.LogInfo(ctx, "Profit and loss statement built",
		slog.String("period", periodLabel),
		slog.Int("entry_count", len(entries)),
		slog.Bool("monthly", includeMonthly),
		slog.Bool("comparison", includeComparison))
	return &statement, nil
}

// collectEntries pages through the full entry list for a period.
func (s *statementService) collectEntries(ctx context.Context, from, to time.Time) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	var nextToken *string
	for {
		page, token, err := s.ledgerRepo.ListEntries(ctx, from, to, nil, entryPageSize, nextToken)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		if token == nil {
			return entries, nil
		}
		nextToken = token
	}
}

// previousPeriodBounds resolves the period immediately preceding [from, to].
// Whole calendar month ranges shift back by the same number of months, so
// February 2024 compares against January 1–31 rather than a 29-day window
// cut out of January. Any other range keeps its exact duration.
func previousPeriodBounds(from, to time.Time) (time.Time, time.Time) {
	prevTo := from.Add(-time.Millisecond)
	if from.Day() == 1 && isLastDayOfMonth(to) {
		months := monthsBetween(from, to)
		return from.AddDate(0, -months, 0), prevTo
	}
	length := to.Sub(from)
	return from.Add(-length), prevTo
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
}
