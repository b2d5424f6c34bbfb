package accounting

import (
	"strings"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest absolute difference between debits and
// credits still treated as balanced. It only guards against rounding noise.
var BalanceTolerance = decimal.New(1, -4)

// AmountScale is the number of decimal places a stored amount can carry.
const AmountScale = 4

// MaxAmount is the exclusive upper bound of a single stored amount.
var MaxAmount = decimal.New(1, 16)

const (
	maxAmountInputLength = 40
	maxAmountExponent    = 32
)

// Totals summarises the debit and credit sides of a line set.
type Totals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit" swaggertype:"string"`
	TotalCredit decimal.Decimal `json:"totalCredit" swaggertype:"string"`
	Difference  decimal.Decimal `json:"difference" swaggertype:"string"` // TotalDebit - TotalCredit
}

// ParseAmount converts raw form input into an amount. Empty or malformed
// input yields zero so partially filled entries can still be totalled.
// Thousands separators are accepted. Input too long or with an exponent
// far outside any storable amount is treated as malformed, since summing
// such values rescales to arbitrarily large integers.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" || len(cleaned) > maxAmountInputLength {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}
	return amount
}

// ComputeTotals sums both sides of the given lines.
func ComputeTotals(lines []domain.JournalLine) Totals {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}
	return Totals{
		TotalDebit:  debits,
		TotalCredit: credits,
		Difference:  debits.Sub(credits),
	}
}

// IsBalanced reports whether |Difference| is below BalanceTolerance.
func IsBalanced(t Totals) bool {
	return t.Difference.Abs().LessThan(BalanceTolerance)
}
