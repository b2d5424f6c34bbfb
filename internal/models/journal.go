package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID         string     `db:"entry_id"`
	EntryDate       time.Time  `db:"entry_date"`
	Description     string     `db:"description"`
	Status          string     `db:"status"`
	Version         int64      `db:"version"`
	SubmittedBy     *string    `db:"submitted_by"`
	SubmittedAt     *time.Time `db:"submitted_at"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	RejectedBy      *string    `db:"rejected_by"`
	RejectedAt      *time.Time `db:"rejected_at"`
	RejectionReason *string    `db:"rejection_reason"`
	ConfirmedBy     *string    `db:"confirmed_by"`
	ConfirmedAt     *time.Time `db:"confirmed_at"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	LineNumber   int             `db:"line_number"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Memo         string          `db:"memo"`
}

// EntryEvent is a row of the journal_entry_events table.
type EntryEvent struct {
	EventID    string    `db:"event_id"`
	EntryID    string    `db:"entry_id"`
	Operation  string    `db:"operation"`
	FromStatus *string   `db:"from_status"` // NULL for create
	ToStatus   *string   `db:"to_status"`   // NULL for delete
	ActorID    string    `db:"actor_id"`
	Reason     *string   `db:"reason"`
	Version    int64     `db:"version"`
	OccurredAt time.Time `db:"occurred_at"`
}
