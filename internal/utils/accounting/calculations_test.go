package accounting

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{name: "empty", raw: "", want: decimal.Zero},
		{name: "whitespace", raw: "   ", want: decimal.Zero},
		{name: "integer", raw: "1000", want: decimal.NewFromInt(1000)},
		{name: "fraction", raw: "12.34", want: decimal.RequireFromString("12.34")},
		{name: "thousands separator", raw: "1,500", want: decimal.NewFromInt(1500)},
		{name: "padded", raw: " 7 ", want: decimal.NewFromInt(7)},
		{name: "garbage", raw: "abc", want: decimal.Zero},
		{name: "partial number", raw: "12..3", want: decimal.Zero},
		{name: "exponent notation in range", raw: "1.5e3", want: decimal.NewFromInt(1500)},
		{name: "huge exponent", raw: "1e50000000", want: decimal.Zero},
		{name: "tiny exponent", raw: "1e-50000000", want: decimal.Zero},
		{name: "overlong input", raw: strings.Repeat("9", 41), want: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.raw)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "1", DebitAmount: decimal.NewFromInt(1000)},
		{AccountID: "2", CreditAmount: decimal.NewFromInt(900)},
	}

	totals := ComputeTotals(lines)
	assert.True(t, totals.TotalDebit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, totals.TotalCredit.Equal(decimal.NewFromInt(900)))
	assert.True(t, totals.Difference.Equal(decimal.NewFromInt(100)))
	assert.False(t, IsBalanced(totals))
}

func TestComputeTotals_ExtremeInputIsCheap(t *testing.T) {
	start := time.Now()
	lines := []domain.JournalLine{
		{AccountID: "1", DebitAmount: ParseAmount("1e2000000")},
		{AccountID: "2", CreditAmount: ParseAmount("1e-2000000")},
		{AccountID: "3", DebitAmount: ParseAmount("1e32")},
		{AccountID: "4", CreditAmount: ParseAmount("1e-32")},
	}

	totals := ComputeTotals(lines)
	assert.Less(t, time.Since(start), time.Second)
	assert.Less(t, len(totals.Difference.String()), 80)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Difference.IsZero())
	assert.True(t, IsBalanced(totals))
}

func TestIsBalanced_Tolerance(t *testing.T) {
	tests := []struct {
		name       string
		difference string
		want       bool
	}{
		{name: "exact", difference: "0", want: true},
		{name: "noise below tolerance", difference: "0.00009", want: true},
		{name: "negative noise below tolerance", difference: "-0.00009", want: true},
		{name: "at tolerance", difference: "0.0001", want: false},
		{name: "one unit", difference: "1", want: false},
		{name: "negative one unit", difference: "-1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBalanced(Totals{Difference: decimal.RequireFromString(tt.difference)}))
		})
	}
}

// Difference must equal sum(debit) - sum(credit) for any line set.
func TestComputeTotals_DifferenceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(12)
		lines := make([]domain.JournalLine, n)
		sumDebit := decimal.Zero
		sumCredit := decimal.Zero
		for j := range lines {
			amount := decimal.New(rng.Int63n(1_000_000), -int32(rng.Intn(3)))
			if rng.Intn(2) == 0 {
				lines[j].DebitAmount = amount
				sumDebit = sumDebit.Add(amount)
			} else {
				lines[j].CreditAmount = amount
				sumCredit = sumCredit.Add(amount)
			}
		}

		totals := ComputeTotals(lines)
		want := sumDebit.Sub(sumCredit)
		assert.True(t, want.Equal(totals.Difference), "iteration %d", i)
		assert.Equal(t, want.Abs().LessThan(BalanceTolerance), IsBalanced(totals), "iteration %d", i)
	}
}
