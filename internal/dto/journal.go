package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/core/workflow"
	"github.com/SscSPs/journal_workflow_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of an entry date.
const DateLayout = "2006-01-02"

// Amount is a line amount as typed into a form. It accepts a JSON number, a
// string (thousands separators allowed) or null. Empty or malformed input
// decodes to zero; the validator decides whether that is acceptable.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := string(bytes.TrimSpace(b))
	if raw == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
	}
	a.Decimal = accounting.ParseAmount(raw)
	return nil
}

// Date is a calendar date. Both "2006-01-02" and RFC 3339 are accepted; an
// empty string or null leaves the zero value.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	y, m, day := t.Date()
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return nil
}

// JournalLineRequest is one line of a create or edit request.
type JournalLineRequest struct {
	AccountID    string `json:"accountID" binding:"max=64"`
	DebitAmount  Amount `json:"debitAmount" swaggertype:"string" example:"1000.00"`
	CreditAmount Amount `json:"creditAmount" swaggertype:"string" example:"0"`
	Memo         string `json:"memo" binding:"max=500"`
}

// JournalEntryInput is the editable part of an entry.
type JournalEntryInput struct {
	Date        Date                 `json:"date" swaggertype:"string" example:"2026-09-30"`
	Description string               `json:"description" binding:"max=1000"`
	Lines       []JournalLineRequest `json:"lines" binding:"max=500,dive"`
}

// CreateJournalEntryRequest creates a new DRAFT entry.
type CreateJournalEntryRequest struct {
	JournalEntryInput
}

// UpdateJournalEntryRequest edits a DRAFT entry. Version is the one last read by the caller.
type UpdateJournalEntryRequest struct {
	Version int64 `json:"version" binding:"required,min=1"`
	JournalEntryInput
}

// TransitionRequest carries the caller's version for submit, approve and confirm.
type TransitionRequest struct {
	Version int64 `json:"version" binding:"required,min=1"`
}

// RejectJournalEntryRequest returns a PENDING entry to DRAFT.
type RejectJournalEntryRequest struct {
	Version int64  `json:"version" binding:"required,min=1"`
	Reason  string `json:"reason" binding:"max=1000"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status    string  `form:"status" binding:"omitempty,entrystatus"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ToDomainLines converts request lines into domain lines. Line numbers are
// assigned later by normalization.
func (in JournalEntryInput) ToDomainLines() []domain.JournalLine {
	lines := make([]domain.JournalLine, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = domain.JournalLine{
			AccountID:    l.AccountID,
			DebitAmount:  l.DebitAmount.Decimal,
			CreditAmount: l.CreditAmount.Decimal,
			Memo:         l.Memo,
		}
	}
	return lines
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount" swaggertype:"string"`
	CreditAmount decimal.Decimal `json:"creditAmount" swaggertype:"string"`
	Memo         string          `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        string                `json:"date"`
	Description string                `json:"description"`
	Status      domain.EntryStatus    `json:"status"`
	Version     int64                 `json:"version"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	Totals      *accounting.Totals    `json:"totals,omitempty"`
	Balanced    *bool                 `json:"balanced,omitempty"`

	SubmittedBy     *string    `json:"submittedBy,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	ConfirmedBy     *string    `json:"confirmedBy,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`

	// Operations the requesting user may perform next.
	AllowedOperations []domain.Operation `json:"allowedOperations"`

	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// EntryHistoryResponse lists the recorded transitions of an entry, oldest first.
type EntryHistoryResponse struct {
	EntryID string              `json:"entryID"`
	Events  []domain.EntryEvent `json:"events"`
}

// DraftValidation is the result of a dry-run validation. Problem is nil when
// the candidate could be submitted as is.
type DraftValidation struct {
	Totals  accounting.Totals
	Problem error
}

// ToJournalLineResponses converts domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	out := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		out[i] = JournalLineResponse{
			LineID:       l.LineID,
			LineNumber:   l.LineNumber,
			AccountID:    l.AccountID,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			Memo:         l.Memo,
		}
	}
	return out
}

// ToJournalEntryResponse converts an entry to its response DTO. Totals are
// included when withLines is set; role decides AllowedOperations.
func ToJournalEntryResponse(e *domain.JournalEntry, role domain.Role, withLines bool) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:           e.EntryID,
		Date:              e.EntryDate.Format(DateLayout),
		Description:       e.Description,
		Status:            e.Status,
		Version:           e.Version,
		SubmittedBy:       e.SubmittedBy,
		SubmittedAt:       e.SubmittedAt,
		ApprovedBy:        e.ApprovedBy,
		ApprovedAt:        e.ApprovedAt,
		RejectedBy:        e.RejectedBy,
		RejectedAt:        e.RejectedAt,
		RejectionReason:   e.RejectionReason,
		ConfirmedBy:       e.ConfirmedBy,
		ConfirmedAt:       e.ConfirmedAt,
		AllowedOperations: workflow.PermittedOperations(role, e.Status),
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
	if resp.AllowedOperations == nil {
		resp.AllowedOperations = []domain.Operation{}
	}
	if withLines {
		totals := accounting.ComputeTotals(e.Lines)
		balanced := accounting.IsBalanced(totals)
		resp.Lines = ToJournalLineResponses(e.Lines)
		resp.Totals = &totals
		resp.Balanced = &balanced
	}
	return resp
}

// ToListJournalEntriesResponse converts a page of entries to its response DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, role domain.Role, nextToken *string) ListJournalEntriesResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i], role, len(entries[i].Lines) > 0)
	}
	return ListJournalEntriesResponse{Entries: out, NextToken: nextToken}
}
