package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the acting role may not perform the requested operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the stored version advanced past the one presented by the caller.
// Callers should reload and retry.
var ErrConflict = errors.New("version conflict")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")

// Journal entry workflow kinds. Typed errors in the workflow package unwrap to these.
var (
	ErrMissingField      = errors.New("required field missing")
	ErrIncompleteLine    = errors.New("incomplete journal line")
	ErrEmptyLineSet      = errors.New("journal entry has no lines")
	ErrUnbalanced        = errors.New("debits and credits do not balance")
	ErrIllegalTransition = errors.New("illegal state transition")
)

// AppError carries an HTTP status hint alongside a wrapped cause. Repositories
// use it for infrastructure failures that should surface as 5xx.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
