package workflow

import "github.com/SscSPs/journal_workflow_app/internal/core/domain"

var requiredRoles = map[domain.Operation]domain.Role{
	domain.OpView:    domain.RoleViewer,
	domain.OpCreate:  domain.RoleUser,
	domain.OpEdit:    domain.RoleUser,
	domain.OpDelete:  domain.RoleUser,
	domain.OpSubmit:  domain.RoleUser,
	domain.OpApprove: domain.RoleManager,
	domain.OpReject:  domain.RoleManager,
	domain.OpConfirm: domain.RoleManager,
}

// RequiredRole returns the minimum role for op.
func RequiredRole(op domain.Operation) (domain.Role, bool) {
	r, ok := requiredRoles[op]
	return r, ok
}

// Authorize decides whether role may perform op. The decision depends on
// nothing but the pair; entry content and state are never consulted.
// Unknown operations are denied to every role.
func Authorize(role domain.Role, op domain.Operation) error {
	required, ok := requiredRoles[op]
	if !ok {
		return &ForbiddenError{Role: role, Operation: op, Required: domain.RoleUnknown}
	}
	if !role.Satisfies(required) {
		return &ForbiddenError{Role: role, Operation: op, Required: required}
	}
	return nil
}

// PermittedOperations lists what role may do to an entry in state current:
// the intersection of the gate and the state machine.
func PermittedOperations(role domain.Role, current domain.EntryStatus) []domain.Operation {
	var ops []domain.Operation
	for _, op := range LegalOperations(current) {
		if Authorize(role, op) == nil {
			ops = append(ops, op)
		}
	}
	return ops
}
