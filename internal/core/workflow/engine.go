// Package workflow decides whether an operation on a journal entry is
// allowed and what the entry looks like afterwards. It performs no I/O and
// keeps no state; persistence and concurrency control belong to the caller.
package workflow

import (
	"strings"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/utils/accounting"
)

// Request is a single operation attempt against an entry.
type Request struct {
	Entry           *domain.JournalEntry
	Operation       domain.Operation
	ActingRole      domain.Role
	ActorID         string
	RejectionReason string
	At              time.Time // Stamped into the side record
}

// SideRecord is the actor/time/reason written alongside a transition.
type SideRecord struct {
	Actor  string
	At     time.Time
	Reason *string
}

// Decision is the accepted result of Evaluate.
type Decision struct {
	Operation       domain.Operation
	FromStatus      domain.EntryStatus
	NewStatus       domain.EntryStatus
	Removed         bool
	NormalizedLines []domain.JournalLine
	Totals          accounting.Totals
	Side            SideRecord
}

// Evaluate authorizes, checks legality and validates req, in that order,
// returning the first failure. Create and edit only require a valid header
// and storable amounts so drafts may be saved unbalanced; submit requires
// the full check.
//
// Evaluate panics if req.Entry is nil.
func Evaluate(req Request) (Decision, error) {
	if req.Entry == nil {
		panic("workflow: Evaluate called with nil entry")
	}

	if err := Authorize(req.ActingRole, req.Operation); err != nil {
		return Decision{}, err
	}

	current := req.Entry.Status
	if !req.Entry.IsPersisted() {
		current = StatusNone
	}

	outcome, err := Transition(current, req.Operation, TransitionPayload{RejectionReason: req.RejectionReason})
	if err != nil {
		return Decision{}, err
	}

	lines := NormalizeLines(req.Entry.Lines)
	totals := accounting.ComputeTotals(lines)

	switch req.Operation {
	case domain.OpCreate, domain.OpEdit:
		if err := ValidateHeader(req.Entry.EntryDate, req.Entry.Description); err != nil {
			return Decision{}, err
		}
		if err := ValidateAmounts(lines); err != nil {
			return Decision{}, err
		}
	case domain.OpSubmit:
		normalized := *req.Entry
		normalized.Lines = lines
		if err := Validate(&normalized); err != nil {
			return Decision{}, err
		}
	}

	d := Decision{
		Operation:       req.Operation,
		FromStatus:      current,
		NewStatus:       outcome.Status,
		Removed:         outcome.Removed,
		NormalizedLines: lines,
		Totals:          totals,
		Side:            SideRecord{Actor: req.ActorID, At: req.At},
	}
	if req.Operation == domain.OpReject {
		reason := strings.TrimSpace(req.RejectionReason)
		d.Side.Reason = &reason
	}
	return d, nil
}

// Apply returns a copy of entry with the decision's state, lines and side
// record written in. Audit fields and Version are left to the caller.
// Earlier side records are kept; a later rejection overwrites the previous one.
func (d Decision) Apply(entry domain.JournalEntry) domain.JournalEntry {
	entry.Status = d.NewStatus
	entry.Lines = d.NormalizedLines
	entry.Description = strings.TrimSpace(entry.Description)

	actor := d.Side.Actor
	at := d.Side.At
	switch d.Operation {
	case domain.OpSubmit:
		entry.SubmittedBy, entry.SubmittedAt = &actor, &at
	case domain.OpApprove:
		entry.ApprovedBy, entry.ApprovedAt = &actor, &at
	case domain.OpReject:
		entry.RejectedBy, entry.RejectedAt = &actor, &at
		entry.RejectionReason = d.Side.Reason
	case domain.OpConfirm:
		entry.ConfirmedBy, entry.ConfirmedAt = &actor, &at
	}
	return entry
}
