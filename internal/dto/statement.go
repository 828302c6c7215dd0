package dto

import (
	"time"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/bizledger/bizops_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// StatementSummaryResponse carries the derived profit figures; margins are
// rendered with two-decimal display precision.
type StatementSummaryResponse struct {
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	GrossProfitMargin string          `json:"grossProfitMargin"`
	OperatingIncome   decimal.Decimal `json:"operatingIncome"`
	OperatingMargin   string          `json:"operatingMargin"`
	EarningsBeforeTax decimal.Decimal `json:"earningsBeforeTax"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	NetProfitMargin   string          `json:"netProfitMargin"`
}

// MonthlyFiguresResponse is one month of the breakdown.
type MonthlyFiguresResponse struct {
	Month     string          `json:"month"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// ComparisonResponse contrasts the period against the preceding one.
type ComparisonResponse struct {
	PreviousPeriod struct {
		From      string          `json:"from"`
		To        string          `json:"to"`
		Revenue   decimal.Decimal `json:"revenue"`
		NetIncome decimal.Decimal `json:"netIncome"`
	} `json:"previousPeriod"`
	Growth struct {
		RevenueGrowth string `json:"revenueGrowth"`
		ProfitGrowth  string `json:"profitGrowth"`
	} `json:"growth"`
}

// ProfitAndLossResponse is the full statement payload for one period.
type ProfitAndLossResponse struct {
	Period              string                           `json:"period"`
	FromDate            string                           `json:"fromDate"`
	ToDate              string                           `json:"toDate"`
	Revenue             domain.RevenueSection            `json:"revenue"`
	CostOfGoodsSold     domain.CogsSection               `json:"costOfGoodsSold"`
	OperatingExpenses   domain.OperatingExpenseSection   `json:"operatingExpenses"`
	OtherIncomeExpenses domain.OtherIncomeExpenseSection `json:"otherIncomeExpenses"`
	TaxExpenses         domain.TaxSection                `json:"taxExpenses"`
	Summary             StatementSummaryResponse         `json:"summary"`
	MonthlyBreakdown    []MonthlyFiguresResponse         `json:"monthlyBreakdown,omitempty"`
	Comparison          *ComparisonResponse              `json:"comparison,omitempty"`
}

// ToProfitAndLossResponse converts a domain statement to the response DTO.
// Margins and growth rates are rounded here, at the display edge; the domain
// model keeps full precision.
func ToProfitAndLossResponse(stmt *domain.FinancialStatement, from, to time.Time) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		Period:              stmt.Period,
		FromDate:            from.Format("2006-01-02"),
		ToDate:              to.Format("2006-01-02"),
		Revenue:             stmt.Revenue,
		CostOfGoodsSold:     stmt.CostOfGoodsSold,
		OperatingExpenses:   stmt.OperatingExpenses,
		OtherIncomeExpenses: stmt.OtherIncomeExpenses,
		TaxExpenses:         stmt.TaxExpenses,
		Summary: StatementSummaryResponse{
			GrossProfit:       stmt.Summary.GrossProfit,
			GrossProfitMargin: utils.FormatWithPrecision(stmt.Summary.GrossProfitMargin, 2),
			OperatingIncome:   stmt.Summary.OperatingIncome,
			OperatingMargin:   utils.FormatWithPrecision(stmt.Summary.OperatingMargin, 2),
			EarningsBeforeTax: stmt.Summary.EarningsBeforeTax,
			NetIncome:         stmt.Summary.NetIncome,
			NetProfitMargin:   utils.FormatWithPrecision(stmt.Summary.NetProfitMargin, 2),
		},
	}

	if len(stmt.MonthlyBreakdown) > 0 {
		response.MonthlyBreakdown = make([]MonthlyFiguresResponse, len(stmt.MonthlyBreakdown))
		for i, month := range stmt.MonthlyBreakdown {
			response.MonthlyBreakdown[i] = MonthlyFiguresResponse{
				Month:     month.Month,
				Revenue:   month.Revenue,
				Expenses:  month.Expenses,
				NetIncome: month.NetIncome,
			}
		}
	}

	if stmt.Comparison != nil {
		comparison := &ComparisonResponse{}
		comparison.PreviousPeriod.From = stmt.Comparison.Previous.From.Format("2006-01-02")
		comparison.PreviousPeriod.To = stmt.Comparison.Previous.To.Format("2006-01-02")
		comparison.PreviousPeriod.Revenue = stmt.Comparison.Previous.Revenue
		comparison.PreviousPeriod.NetIncome = stmt.Comparison.Previous.NetIncome
		comparison.Growth.RevenueGrowth = utils.FormatWithPrecision(stmt.Comparison.Growth.RevenueGrowth, 2)
		comparison.Growth.ProfitGrowth = utils.FormatWithPrecision(stmt.Comparison.Growth.ProfitGrowth, 2)
		response.Comparison = comparison
	}

	return response
}
