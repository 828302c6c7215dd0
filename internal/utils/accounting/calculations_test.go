package accounting_test

import (
	"testing"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/bizledger/bizops_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.DraftLine
		want  bool
	}{
		{
			name: "exactly balanced",
			lines: []domain.DraftLine{
				{DebitAmount: decimal.NewFromInt(5000)},
				{CreditAmount: decimal.NewFromInt(5000)},
			},
			want: true,
		},
		{
			name: "off by one cent is tolerated",
			lines: []domain.DraftLine{
				{DebitAmount: decimal.NewFromInt(5000)},
				{CreditAmount: decimal.RequireFromString("5000.01")},
			},
			want: true,
		},
		{
			name: "off by two cents is not",
			lines: []domain.DraftLine{
				{DebitAmount: decimal.NewFromInt(5000)},
				{CreditAmount: decimal.RequireFromString("5000.02")},
			},
			want: false,
		},
		{
			name: "one debit covered by two credits",
			lines: []domain.DraftLine{
				{DebitAmount: decimal.NewFromInt(100)},
				{CreditAmount: decimal.NewFromInt(60)},
				{CreditAmount: decimal.NewFromInt(40)},
			},
			want: true,
		},
		{
			name:  "no lines",
			lines: nil,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.IsBalanced(tt.lines))
		})
	}
}

func TestMarginPercent(t *testing.T) {
	assert.True(t, decimal.NewFromInt(50).Equal(
		accounting.MarginPercent(decimal.NewFromInt(500), decimal.NewFromInt(1000))))

	// Margins over an empty or negative base stay zero.
	assert.True(t, accounting.MarginPercent(decimal.NewFromInt(500), decimal.Zero).IsZero())
	assert.True(t, accounting.MarginPercent(decimal.NewFromInt(500), decimal.NewFromInt(-100)).IsZero())
}

func TestGrowthPercent(t *testing.T) {
	assert.True(t, decimal.NewFromInt(50).Equal(
		accounting.GrowthPercent(decimal.NewFromInt(300), decimal.NewFromInt(200))))
	assert.True(t, decimal.NewFromInt(-70).Equal(
		accounting.GrowthPercent(decimal.NewFromInt(300), decimal.NewFromInt(1000))))

	assert.True(t, accounting.GrowthPercent(decimal.NewFromInt(300), decimal.Zero).IsZero())
	assert.True(t, accounting.GrowthPercent(decimal.NewFromInt(300), decimal.NewFromInt(-1)).IsZero())
}

func TestSumByReference(t *testing.T) {
	entries := []domain.LedgerEntry{
		{ReferenceType: domain.ReferenceSale, TotalCredit: decimal.NewFromInt(500), TotalDebit: decimal.NewFromInt(500)},
		{ReferenceType: domain.ReferenceInvoice, TotalCredit: decimal.NewFromInt(300), TotalDebit: decimal.NewFromInt(300)},
		{ReferenceType: domain.ReferenceExpense, TotalCredit: decimal.NewFromInt(120), TotalDebit: decimal.NewFromInt(120)},
		{ReferenceType: domain.ReferenceOther, TotalCredit: decimal.NewFromInt(999), TotalDebit: decimal.NewFromInt(999)},
	}

	sales := accounting.SumCreditsByReference(entries, domain.ReferenceSale, domain.ReferenceInvoice)
	assert.True(t, decimal.NewFromInt(800).Equal(sales))

	expenses := accounting.SumDebitsByReference(entries, domain.ReferenceExpense, domain.ReferencePurchase)
	assert.True(t, decimal.NewFromInt(120).Equal(expenses))

	assert.True(t, accounting.SumCreditsByReference(nil, domain.ReferenceSale).IsZero())
}
