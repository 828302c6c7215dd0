package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialMetrics holds the pre-aggregated numbers the storage layer tracks
// for a date range. Fields the source data cannot populate come back zero.
type FinancialMetrics struct {
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalPurchases  decimal.Decimal `json:"totalPurchases"`
	Expenses        decimal.Decimal `json:"expenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	PendingInvoices int             `json:"pendingInvoices"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
}

// RevenueSection groups the revenue side of a profit and loss statement.
type RevenueSection struct {
	Sales            decimal.Decimal `json:"sales"`
	Services         decimal.Decimal `json:"services"`
	OtherIncome      decimal.Decimal `json:"otherIncome"`
	DiscountsReturns decimal.Decimal `json:"discountsReturns"`
	NetRevenue       decimal.Decimal `json:"netRevenue"`
}

// CogsSection groups the cost-of-goods-sold components. Sub-components other
// than Purchases stay zero until the ledger schema records them per line item.
type CogsSection struct {
	BeginningInventory    decimal.Decimal `json:"beginningInventory"`
	Purchases             decimal.Decimal `json:"purchases"`
	DirectLabor           decimal.Decimal `json:"directLabor"`
	ManufacturingOverhead decimal.Decimal `json:"manufacturingOverhead"`
	EndingInventory       decimal.Decimal `json:"endingInventory"`
	TotalCogs             decimal.Decimal `json:"totalCogs"`
}

// OperatingExpenseSection groups the nine named operating expense categories.
type OperatingExpenseSection struct {
	SalariesWages          decimal.Decimal `json:"salariesWages"`
	Rent                   decimal.Decimal `json:"rent"`
	Utilities              decimal.Decimal `json:"utilities"`
	Marketing              decimal.Decimal `json:"marketing"`
	Insurance              decimal.Decimal `json:"insurance"`
	OfficeSupplies         decimal.Decimal `json:"officeSupplies"`
	Depreciation           decimal.Decimal `json:"depreciation"`
	ProfessionalFees       decimal.Decimal `json:"professionalFees"`
	OtherExpenses          decimal.Decimal `json:"otherExpenses"`
	TotalOperatingExpenses decimal.Decimal `json:"totalOperatingExpenses"`
}

// Categories returns the nine category values in a fixed order. The total is
// always computed from this list, never by folding over the struct itself.
func (s OperatingExpenseSection) Categories() []decimal.Decimal {
	return []decimal.Decimal{
		s.SalariesWages,
		s.Rent,
		s.Utilities,
		s.Marketing,
		s.Insurance,
		s.OfficeSupplies,
		s.Depreciation,
		s.ProfessionalFees,
		s.OtherExpenses,
	}
}

// OtherIncomeExpenseSection groups non-operating income and expenses.
type OtherIncomeExpenseSection struct {
	InterestIncome         decimal.Decimal `json:"interestIncome"`
	GainOnAssetSale        decimal.Decimal `json:"gainOnAssetSale"`
	InterestExpense        decimal.Decimal `json:"interestExpense"`
	LossOnAssetSale        decimal.Decimal `json:"lossOnAssetSale"`
	NetOtherIncomeExpenses decimal.Decimal `json:"netOtherIncomeExpenses"`
}

// TaxSection groups tax expenses.
type TaxSection struct {
	IncomeTaxExpense decimal.Decimal `json:"incomeTaxExpense"`
	OtherTaxes       decimal.Decimal `json:"otherTaxes"`
	TotalTaxExpenses decimal.Decimal `json:"totalTaxExpenses"`
}

// StatementSummary carries the derived profit figures and margins.
// Margins are percentages, defined as zero when net revenue is zero.
type StatementSummary struct {
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	GrossProfitMargin decimal.Decimal `json:"grossProfitMargin"`
	OperatingIncome   decimal.Decimal `json:"operatingIncome"`
	OperatingMargin   decimal.Decimal `json:"operatingMargin"`
	EarningsBeforeTax decimal.Decimal `json:"earningsBeforeTax"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	NetProfitMargin   decimal.Decimal `json:"netProfitMargin"`
}

// MonthlyFigures is one calendar month of a breakdown.
type MonthlyFigures struct {
	Month     string          `json:"month"` // e.g. "January 2024"
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// PreviousPeriod carries the figures of the period immediately preceding the
// requested one, together with its resolved boundaries.
type PreviousPeriod struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Revenue   decimal.Decimal `json:"revenue"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// PeriodGrowth holds period-over-period growth percentages.
type PeriodGrowth struct {
	RevenueGrowth decimal.Decimal `json:"revenueGrowth"`
	ProfitGrowth  decimal.Decimal `json:"profitGrowth"`
}

// PeriodComparison contrasts the current period against the preceding one.
type PeriodComparison struct {
	Previous PreviousPeriod `json:"previousPeriod"`
	Growth   PeriodGrowth   `json:"growth"`
}

// FinancialStatement is the full profit and loss model for one period.
// It is built fresh per request and never persisted.
type FinancialStatement struct {
	Period              string                    `json:"period"`
	Revenue             RevenueSection            `json:"revenue"`
	CostOfGoodsSold     CogsSection               `json:"costOfGoodsSold"`
	OperatingExpenses   OperatingExpenseSection   `json:"operatingExpenses"`
	OtherIncomeExpenses OtherIncomeExpenseSection `json:"otherIncomeExpenses"`
	TaxExpenses         TaxSection                `json:"taxExpenses"`
	Summary             StatementSummary          `json:"summary"`
	MonthlyBreakdown    []MonthlyFigures          `json:"monthlyBreakdown,omitempty"`
	Comparison          *PeriodComparison         `json:"comparison,omitempty"`
}
