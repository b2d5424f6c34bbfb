package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// Only the workflow state machine may move an entry between states.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusPending   EntryStatus = "PENDING"
	StatusApproved  EntryStatus = "APPROVED"
	StatusConfirmed EntryStatus = "CONFIRMED"
)

// EntryStatuses lists every defined status in lifecycle order.
var EntryStatuses = []EntryStatus{StatusDraft, StatusPending, StatusApproved, StatusConfirmed}

// IsValid reports whether s is one of the four defined statuses.
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusConfirmed:
		return true
	}
	return false
}

// IsTerminal reports whether no further operation is permitted from s.
func (s EntryStatus) IsTerminal() bool {
	return s == StatusConfirmed
}

// Operation names an action a caller may request on a journal entry.
type Operation string

const (
	OpCreate  Operation = "create"
	OpEdit    Operation = "edit"
	OpDelete  Operation = "delete"
	OpSubmit  Operation = "submit"
	OpApprove Operation = "approve"
	OpReject  Operation = "reject"
	OpConfirm Operation = "confirm"

	// OpView is a read. It is gated by role but never changes state.
	OpView Operation = "view"
)

// Operations lists every state-changing operation the workflow knows about.
var Operations = []Operation{OpCreate, OpEdit, OpDelete, OpSubmit, OpApprove, OpReject, OpConfirm}

// JournalLine is one debit or credit posting within a journal entry.
// Exactly one of DebitAmount and CreditAmount is positive on a valid line.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"` // 1-based, reassigned on normalization
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Memo         string          `json:"memo"`
}

// HasDebit reports whether the debit side carries a non-zero amount.
func (l JournalLine) HasDebit() bool { return !l.DebitAmount.IsZero() }

// HasCredit reports whether the credit side carries a non-zero amount.
func (l JournalLine) HasCredit() bool { return !l.CreditAmount.IsZero() }

// JournalEntry is a double-entry bookkeeping record routed through the approval workflow.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`   // Empty until persisted
	EntryDate   time.Time     `json:"entryDate"` // Calendar date of the accounting event
	Description string        `json:"description"`
	Status      EntryStatus   `json:"status"`
	Version     int64         `json:"version"` // Optimistic concurrency counter
	Lines       []JournalLine `json:"lines"`

	SubmittedBy     *string    `json:"submittedBy,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	ConfirmedBy     *string    `json:"confirmedBy,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
	AuditFields
}

// IsPersisted reports whether the entry has been assigned an identifier by the store.
func (e *JournalEntry) IsPersisted() bool {
	return e.EntryID != ""
}
