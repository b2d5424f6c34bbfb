package workflow

import (
	"strings"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	reasonMissingAccount = "account is required"
	reasonMissingAmount  = "a debit or credit amount is required"
	reasonBothSides      = "only one of debit or credit may be populated"
	reasonNotPositive    = "amount must be positive"
	reasonTooLarge       = "amount too large"
	reasonTooPrecise     = "amount exceeds 4 decimal places"
)

// ValidateHeader checks the entry date and description.
func ValidateHeader(date time.Time, description string) error {
	if date.IsZero() {
		return &MissingFieldError{Field: "date"}
	}
	if strings.TrimSpace(description) == "" {
		return &MissingFieldError{Field: "description"}
	}
	return nil
}

// ValidateLines returns the first structural problem in lines, if any.
// Any invalid line blocks the whole entry.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return &EmptyLineSetError{}
	}
	for i, line := range lines {
		if reason := lineProblem(line); reason != "" {
			return &IncompleteLineError{LineIndex: i, Reason: reason}
		}
	}
	return nil
}

func lineProblem(line domain.JournalLine) string {
	if strings.TrimSpace(line.AccountID) == "" {
		return reasonMissingAccount
	}
	hasDebit, hasCredit := line.HasDebit(), line.HasCredit()
	switch {
	case hasDebit && hasCredit:
		return reasonBothSides
	case !hasDebit && !hasCredit:
		return reasonMissingAmount
	}
	return storableProblem(line)
}

// ValidateAmounts checks only that every populated amount can be stored:
// non-negative, below accounting.MaxAmount and at most
// accounting.AmountScale decimal places. Drafts must pass it even though
// they may still be incomplete or unbalanced.
func ValidateAmounts(lines []domain.JournalLine) error {
	for i, line := range lines {
		if reason := storableProblem(line); reason != "" {
			return &IncompleteLineError{LineIndex: i, Reason: reason}
		}
	}
	return nil
}

func storableProblem(line domain.JournalLine) string {
	if reason := amountProblem(line.DebitAmount); reason != "" {
		return reason
	}
	return amountProblem(line.CreditAmount)
}

func amountProblem(amount decimal.Decimal) string {
	switch {
	case amount.IsNegative():
		return reasonNotPositive
	case amount.GreaterThanOrEqual(accounting.MaxAmount):
		return reasonTooLarge
	case !amount.Equal(amount.Truncate(accounting.AmountScale)):
		return reasonTooPrecise
	}
	return ""
}

// ValidateBalance fails when the totals are not balanced.
func ValidateBalance(totals accounting.Totals) error {
	if !accounting.IsBalanced(totals) {
		return &UnbalancedError{Totals: totals}
	}
	return nil
}

// Validate runs header, line and balance checks in that order and returns
// the first failure.
func Validate(entry *domain.JournalEntry) error {
	if err := ValidateHeader(entry.EntryDate, entry.Description); err != nil {
		return err
	}
	if err := ValidateLines(entry.Lines); err != nil {
		return err
	}
	return ValidateBalance(accounting.ComputeTotals(entry.Lines))
}

// NormalizeLines returns a copy of lines with text fields trimmed and line
// numbers reassigned contiguously from 1. Applying it twice is a no-op.
func NormalizeLines(lines []domain.JournalLine) []domain.JournalLine {
	normalized := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		line.LineNumber = i + 1
		line.AccountID = strings.TrimSpace(line.AccountID)
		line.Memo = strings.TrimSpace(line.Memo)
		normalized[i] = line
	}
	return normalized
}
