package accounting

import (
	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerated absolute difference between total debits
// and total credits of a draft entry, to absorb rounding noise from clients
// that compute amounts in binary floating point.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// BalanceDifference returns |sum(debits) - sum(credits)| across the lines.
func BalanceDifference(lines []domain.DraftLine) decimal.Decimal {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}
	return debits.Sub(credits).Abs()
}

// IsBalanced reports whether the lines balance within BalanceEpsilon.
func IsBalanced(lines []domain.DraftLine) bool {
	return BalanceDifference(lines).LessThanOrEqual(BalanceEpsilon)
}

// SumCreditsByReference totals TotalCredit over entries whose reference type
// is in the given set. Used to derive revenue when aggregate metrics are absent.
func SumCreditsByReference(entries []domain.LedgerEntry, refs ...domain.ReferenceType) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if matchesReference(entry.ReferenceType, refs) {
			total = total.Add(entry.TotalCredit)
		}
	}
	return total
}

// SumDebitsByReference totals TotalDebit over entries whose reference type
// is in the given set. Used to derive expenses when aggregate metrics are absent.
func SumDebitsByReference(entries []domain.LedgerEntry, refs ...domain.ReferenceType) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if matchesReference(entry.ReferenceType, refs) {
			total = total.Add(entry.TotalDebit)
		}
	}
	return total
}

func matchesReference(ref domain.ReferenceType, refs []domain.ReferenceType) bool {
	for _, r := range refs {
		if ref == r {
			return true
		}
	}
	return false
}

// MarginPercent returns part/whole*100, or zero when the whole is not
// positive. Margins over an empty period must be 0, never a division error.
func MarginPercent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// GrowthPercent returns (current-previous)/previous*100, or zero when the
// previous value is not positive.
func GrowthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}
