package workflow

import (
	"fmt"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/utils/accounting"
)

// MissingFieldError reports an empty required header field or rejection reason.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == apperrors.ErrMissingField || target == apperrors.ErrValidation
}

// IncompleteLineError reports the first line that lacks an account or a
// single positive amount. LineIndex is 0-based.
type IncompleteLineError struct {
	LineIndex int
	Reason    string
}

func (e *IncompleteLineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineIndex+1, e.Reason)
}

func (e *IncompleteLineError) Is(target error) bool {
	return target == apperrors.ErrIncompleteLine || target == apperrors.ErrValidation
}

// EmptyLineSetError reports an entry with no lines.
type EmptyLineSetError struct{}

func (e *EmptyLineSetError) Error() string {
	return "journal entry must have at least one line"
}

func (e *EmptyLineSetError) Is(target error) bool {
	return target == apperrors.ErrEmptyLineSet || target == apperrors.ErrValidation
}

// UnbalancedError reports debits that differ from credits.
type UnbalancedError struct {
	Totals accounting.Totals
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("debits and credits differ by %s (debits %s, credits %s)",
		e.Totals.Difference.String(), e.Totals.TotalDebit.String(), e.Totals.TotalCredit.String())
}

func (e *UnbalancedError) Is(target error) bool {
	return target == apperrors.ErrUnbalanced || target == apperrors.ErrValidation
}

// IllegalTransitionError reports an operation that is not permitted from the
// entry's current state.
type IllegalTransitionError struct {
	Current   domain.EntryStatus
	Operation domain.Operation
}

func (e *IllegalTransitionError) Error() string {
	current := string(e.Current)
	if e.Current == StatusNone {
		current = "unsaved"
	}
	return fmt.Sprintf("cannot %s a journal entry in state %s", e.Operation, current)
}

func (e *IllegalTransitionError) Unwrap() error {
	return apperrors.ErrIllegalTransition
}

// ForbiddenError reports a role that does not meet the operation's requirement.
type ForbiddenError struct {
	Role      domain.Role
	Operation domain.Operation
	Required  domain.Role
}

func (e *ForbiddenError) Error() string {
	if !e.Required.IsValid() {
		return fmt.Sprintf("operation %q is not permitted", e.Operation)
	}
	return fmt.Sprintf("role %s may not %s journal entries (requires %s)", e.Role, e.Operation, e.Required)
}

func (e *ForbiddenError) Unwrap() error {
	return apperrors.ErrForbidden
}
