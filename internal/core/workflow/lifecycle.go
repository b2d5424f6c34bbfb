package workflow

import (
	"strings"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
)

// StatusNone is the state of an entry that has not been stored yet.
const StatusNone domain.EntryStatus = ""

// Outcome is the result of a legal transition.
type Outcome struct {
	Status  domain.EntryStatus // Resulting state; StatusNone when Removed
	Removed bool
}

// TransitionPayload carries operation-specific input to the state machine.
type TransitionPayload struct {
	RejectionReason string
}

type transitionKey struct {
	from domain.EntryStatus
	op   domain.Operation
}

var transitions = map[transitionKey]Outcome{
	{StatusNone, domain.OpCreate}:             {Status: domain.StatusDraft},
	{domain.StatusDraft, domain.OpEdit}:       {Status: domain.StatusDraft},
	{domain.StatusDraft, domain.OpDelete}:     {Removed: true},
	{domain.StatusDraft, domain.OpSubmit}:     {Status: domain.StatusPending},
	{domain.StatusPending, domain.OpApprove}:  {Status: domain.StatusApproved},
	{domain.StatusPending, domain.OpReject}:   {Status: domain.StatusDraft},
	{domain.StatusApproved, domain.OpConfirm}: {Status: domain.StatusConfirmed},
}

// Transition computes the state an entry moves to when op is applied in
// state current. It keeps no state between calls; callers must pass the
// authoritative stored state every time.
func Transition(current domain.EntryStatus, op domain.Operation, payload TransitionPayload) (Outcome, error) {
	outcome, ok := transitions[transitionKey{from: current, op: op}]
	if !ok {
		return Outcome{}, &IllegalTransitionError{Current: current, Operation: op}
	}
	if op == domain.OpReject && strings.TrimSpace(payload.RejectionReason) == "" {
		return Outcome{}, &MissingFieldError{Field: "rejectionReason"}
	}
	return outcome, nil
}

// LegalOperations lists the operations the state machine accepts from current,
// in domain.Operations order.
func LegalOperations(current domain.EntryStatus) []domain.Operation {
	var ops []domain.Operation
	for _, op := range domain.Operations {
		if _, ok := transitions[transitionKey{from: current, op: op}]; ok {
			ops = append(ops, op)
		}
	}
	return ops
}
