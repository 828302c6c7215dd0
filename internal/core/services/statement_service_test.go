package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.StatementService
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewStatementService(suite.mockLedgerRepo)
}

func (suite *StatementServiceTestSuite) equalDecimal(expected string, actual decimal.Decimal) {
	suite.True(decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual.String())
}

// --- BuildStatement Cases ---

func (suite *StatementServiceTestSuite) TestBuildStatement_DerivesSummaryChain() {
	metrics := domain.FinancialMetrics{
		TotalSales:     decimal.NewFromInt(10000),
		TotalPurchases: decimal.NewFromInt(2000),
		Expenses:       decimal.NewFromInt(3000),
	}

	stmt := suite.service.BuildStatement(metrics, nil, "Jan 1, 2024 - Jan 31, 2024")

	suite.Equal("Jan 1, 2024 - Jan 31, 2024", stmt.Period)
	suite.equalDecimal("10000", stmt.Revenue.NetRevenue)
	suite.equalDecimal("2000", stmt.CostOfGoodsSold.TotalCogs)
	suite.equalDecimal("3000", stmt.OperatingExpenses.TotalOperatingExpenses)
	suite.equalDecimal("8000", stmt.Summary.GrossProfit)
	suite.equalDecimal("5000", stmt.Summary.OperatingIncome)
	suite.equalDecimal("5000", stmt.Summary.EarningsBeforeTax)
	suite.equalDecimal("5000", stmt.Summary.NetIncome)
	suite.equalDecimal("80", stmt.Summary.GrossProfitMargin)
	suite.equalDecimal("50", stmt.Summary.OperatingMargin)
	suite.equalDecimal("50", stmt.Summary.NetProfitMargin)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_ZeroRevenueZeroMargins() {
	metrics := domain.FinancialMetrics{
		Expenses: decimal.NewFromInt(3000),
	}

	stmt := suite.service.BuildStatement(metrics, nil, "empty period")

	suite.True(stmt.Revenue.NetRevenue.IsZero())
	suite.equalDecimal("-3000", stmt.Summary.NetIncome)
	suite.True(stmt.Summary.GrossProfitMargin.IsZero())
	suite.True(stmt.Summary.OperatingMargin.IsZero())
	suite.True(stmt.Summary.NetProfitMargin.IsZero())
}

func (suite *StatementServiceTestSuite) TestBuildStatement_SalesFallbackFromEntries() {
	entries := []domain.LedgerEntry{
		{ReferenceType: domain.ReferenceSale, TotalCredit: decimal.NewFromInt(500), TotalDebit: decimal.NewFromInt(500)},
		{ReferenceType: domain.ReferenceInvoice, TotalCredit: decimal.NewFromInt(300), TotalDebit: decimal.NewFromInt(300)},
		{ReferenceType: domain.ReferenceOther, TotalCredit: decimal.NewFromInt(999), TotalDebit: decimal.NewFromInt(999)},
	}

	stmt := suite.service.BuildStatement(domain.FinancialMetrics{}, entries, "p")

	suite.equalDecimal("800", stmt.Revenue.Sales)
	suite.equalDecimal("800", stmt.Revenue.NetRevenue)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_ExpenseFallbackFromEntries() {
	entries := []domain.LedgerEntry{
		{ReferenceType: domain.ReferenceExpense, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(100)},
		{ReferenceType: domain.ReferencePurchase, TotalDebit: decimal.NewFromInt(50), TotalCredit: decimal.NewFromInt(50)},
		{ReferenceType: domain.ReferenceSale, TotalDebit: decimal.NewFromInt(70), TotalCredit: decimal.NewFromInt(70)},
	}

	stmt := suite.service.BuildStatement(domain.FinancialMetrics{}, entries, "p")

	suite.equalDecimal("150", stmt.OperatingExpenses.OtherExpenses)
	suite.equalDecimal("150", stmt.OperatingExpenses.TotalOperatingExpenses)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_MetricsWinOverEntries() {
	entries := []domain.LedgerEntry{
		{ReferenceType: domain.ReferenceSale, TotalCredit: decimal.NewFromInt(500), TotalDebit: decimal.NewFromInt(500)},
	}
	metrics := domain.FinancialMetrics{TotalSales: decimal.NewFromInt(1200)}

	stmt := suite.service.BuildStatement(metrics, entries, "p")

	suite.equalDecimal("1200", stmt.Revenue.Sales)
}

// --- MonthlyBreakdown Cases ---

func (suite *StatementServiceTestSuite) monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Millisecond)
}

func (suite *StatementServiceTestSuite) TestMonthlyBreakdown_CoversOverlappingMonths() {
	ctx := context.Background()
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for i, month := range []time.Month{time.January, time.February, time.March} {
		start, end := suite.monthBounds(2024, month)
		suite.mockLedgerRepo.On("GetFinancialMetrics", mock.Anything, start, end).
			Return(&domain.FinancialMetrics{
				TotalSales: decimal.NewFromInt(int64(1000 * (i + 1))),
				Expenses:   decimal.NewFromInt(int64(100 * (i + 1))),
				NetProfit:  decimal.NewFromInt(int64(900 * (i + 1))),
			}, nil).Once()
	}

	breakdown, err := suite.service.MonthlyBreakdown(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(breakdown, 3)
	suite.Equal("January 2024", breakdown[0].Month)
	suite.Equal("February 2024", breakdown[1].Month)
	suite.Equal("March 2024", breakdown[2].Month)
	suite.equalDecimal("1000", breakdown[0].Revenue)
	suite.equalDecimal("2700", breakdown[2].NetIncome)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestMonthlyBreakdown_OmitsFailedMonth() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	janStart, janEnd := suite.monthBounds(2024, time.January)
	febStart, febEnd := suite.monthBounds(2024, time.February)
	marStart, marEnd := suite.monthBounds(2024, time.March)

	suite.mockLedgerRepo.On("GetFinancialMetrics", mock.Anything, janStart, janEnd).
		Return(&domain.FinancialMetrics{TotalSales: decimal.NewFromInt(10)}, nil).Once()
	suite.mockLedgerRepo.On("GetFinancialMetrics", mock.Anything, febStart, febEnd).
		Return(nil, errors.New("timeout")).Once()
	suite.mockLedgerRepo.On("GetFinancialMetrics", mock.Anything, marStart, marEnd).
		Return(&domain.FinancialMetrics{TotalSales: decimal.NewFromInt(30)}, nil).Once()

	breakdown, err := suite.service.MonthlyBreakdown(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(breakdown, 2)
	suite.Equal("January 2024", breakdown[0].Month)
	suite.Equal("March 2024", breakdown[1].Month)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestMonthlyBreakdown_ReversedRangeIsEmpty() {
	ctx := context.Background()
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	breakdown, err := suite.service.MonthlyBreakdown(ctx, from, to)

	suite.Require().NoError(err)
	suite.Empty(breakdown)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "GetFinancialMetrics", mock.Anything, mock.Anything, mock.Anything)
}

// --- Comparison Cases ---

func (suite *StatementServiceTestSuite) TestComparison_WholeMonthShiftsCalendarMonth() {
	ctx := context.Background()
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	prevFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prevTo := from.Add(-time.Millisecond)
	suite.mockLedgerRepo.On("GetFinancialMetrics", ctx, prevFrom, prevTo).
		Return(&domain.FinancialMetrics{
			TotalSales: decimal.NewFromInt(1000),
			NetProfit:  decimal.NewFromInt(200),
		}, nil).Once()

	comparison, err := suite.service.Comparison(ctx, from, to, decimal.NewFromInt(300))

	suite.Require().NoError(err)
	suite.Require().NotNil(comparison)
	suite.True(comparison.Previous.From.Equal(prevFrom))
	suite.True(comparison.Previous.To.Equal(prevTo))
	suite.equalDecimal("1000", comparison.Previous.Revenue)
	suite.equalDecimal("200", comparison.Previous.NetIncome)
	suite.equalDecimal("-70", comparison.Growth.RevenueGrowth)
	suite.equalDecimal("50", comparison.Growth.ProfitGrowth)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestComparison_ArbitraryRangeKeepsDuration() {
	ctx := context.Background()
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	prevFrom := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	prevTo := from.Add(-time.Millisecond)
	suite.mockLedgerRepo.On("GetFinancialMetrics", ctx, prevFrom, prevTo).
		Return(&domain.FinancialMetrics{}, nil).Once()

	comparison, err := suite.service.Comparison(ctx, from, to, decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.True(comparison.Previous.From.Equal(prevFrom))
	suite.True(comparison.Growth.RevenueGrowth.IsZero())
	suite.True(comparison.Growth.ProfitGrowth.IsZero())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestComparison_RepoError() {
	ctx := context.Background()
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	dbErr := errors.New("connection refused")

	suite.mockLedgerRepo.On("GetFinancialMetrics", ctx, mock.Anything, mock.Anything).
		Return(nil, dbErr).Once()

	comparison, err := suite.service.Comparison(ctx, from, to, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.Nil(comparison)
	suite.True(errors.Is(err, dbErr))
}

// --- ProfitAndLoss Cases ---

func (suite *StatementServiceTestSuite) TestProfitAndLoss_AssemblesStatement() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("GetFinancialMetrics", ctx, from, to).
		Return(&domain.FinancialMetrics{
			TotalSales: decimal.NewFromInt(10000),
			Expenses:   decimal.NewFromInt(4000),
		}, nil).Once()
	suite.mockLedgerRepo.On("ListEntries", ctx, from, to, (*domain.EntryFilter)(nil), 100, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	stmt, err := suite.service.ProfitAndLoss(ctx, from, to, false, false)

	suite.Require().NoError(err)
	suite.Require().NotNil(stmt)
	suite.Equal("Jan 1, 2024 - Jan 31, 2024", stmt.Period)
	suite.equalDecimal("6000", stmt.Summary.NetIncome)
	suite.Nil(stmt.Comparison)
	suite.Empty(stmt.MonthlyBreakdown)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestProfitAndLoss_ComparisonFailureIsOmitted() {
	ctx := context.Background()
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("GetFinancialMetrics", ctx, from, to).
		Return(&domain.FinancialMetrics{TotalSales: decimal.NewFromInt(500)}, nil).Once()
	suite.mockLedgerRepo.On("ListEntries", ctx, from, to, (*domain.EntryFilter)(nil), 100, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	prevFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prevTo := from.Add(-time.Millisecond)
	suite.mockLedgerRepo.On("GetFinancialMetrics", ctx, prevFrom, prevTo).
		Return(nil, errors.New("timeout")).Once()

	stmt, err := suite.service.ProfitAndLoss(ctx, from, to, false, true)

	suite.Require().NoError(err)
	suite.Require().NotNil(stmt)
	suite.Nil(stmt.Comparison)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
