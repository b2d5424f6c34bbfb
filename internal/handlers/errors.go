package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/workflow"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes returned in dto.ErrorResponse.Code.
const (
	codeBadRequest        = "BAD_REQUEST"
	codeValidation        = "VALIDATION"
	codeMissingField      = "MISSING_FIELD"
	codeIncompleteLine    = "INCOMPLETE_LINE"
	codeEmptyLineSet      = "EMPTY_LINE_SET"
	codeUnbalanced        = "UNBALANCED"
	codeUnauthorized      = "UNAUTHORIZED"
	codeForbidden         = "FORBIDDEN"
	codeNotFound          = "NOT_FOUND"
	codeDuplicate         = "DUPLICATE"
	codeConflict          = "CONFLICT"
	codeIllegalTransition = "ILLEGAL_TRANSITION"
	codeInternal          = "INTERNAL"
)

// describeError classifies err into an HTTP status and response body.
func describeError(err error) (int, dto.ErrorResponse) {
	var (
		missing    *workflow.MissingFieldError
		incomplete *workflow.IncompleteLineError
		empty      *workflow.EmptyLineSetError
		unbalanced *workflow.UnbalancedError
		illegal    *workflow.IllegalTransitionError
		forbidden  *workflow.ForbiddenError
		appErr     *apperrors.AppError
	)

	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: codeMissingField,
			Details: map[string]any{"field": missing.Field}}
	case errors.As(err, &incomplete):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: codeIncompleteLine,
			Details: map[string]any{"lineIndex": incomplete.LineIndex, "reason": incomplete.Reason}}
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: codeEmptyLineSet}
	case errors.As(err, &unbalanced):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: codeUnbalanced,
			Details: map[string]any{
				"totalDebit":  unbalanced.Totals.TotalDebit.String(),
				"totalCredit": unbalanced.Totals.TotalCredit.String(),
				"difference":  unbalanced.Totals.Difference.String(),
			}}
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: codeValidation}
	case errors.As(err, &forbidden):
		details := map[string]any{"role": forbidden.Role.String(), "operation": string(forbidden.Operation)}
		if forbidden.Required.IsValid() {
			details["requiredRole"] = forbidden.Required.String()
		}
		return http.StatusForbidden, dto.ErrorResponse{Error: err.Error(), Code: codeForbidden, Details: details}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, dto.ErrorResponse{Error: err.Error(), Code: codeForbidden}
	case errors.As(err, &illegal):
		return http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: codeIllegalTransition,
			Details: map[string]any{"currentStatus": string(illegal.Current), "operation": string(illegal.Operation)}}
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: codeConflict}
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: codeDuplicate}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: codeNotFound}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: codeUnauthorized}
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		return appErr.Code, dto.ErrorResponse{Error: appErr.Message, Code: codeBadRequest}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error", Code: codeInternal}
	}
}

// respondError writes the classified error and logs it at a level matching its status.
func respondError(c *gin.Context, err error, msg string) {
	status, body := describeError(err)
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.AbortWithStatusJSON(status, body)
}

// respondBindError reports a request that could not be decoded or failed its binding tags.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe.Namespace())] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "Request failed validation",
			Code:    codeValidation,
			Details: map[string]any{"fields": fields},
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: codeBadRequest})
}

// fieldPath drops the struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func respondUnauthorized(c *gin.Context) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: codeUnauthorized})
}
