package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/core/workflow"
	"github.com/SscSPs/journal_workflow_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Roles portssvc.RoleResolver
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeOperation resolves the acting user's role from the user store and
// checks it against op. The role is returned for later use.
func (s *BaseService) AuthorizeOperation(ctx context.Context, actingUserID string, op domain.Operation) (domain.Role, error) {
	role, err := s.Roles.ResolveRole(ctx, actingUserID)
	if err != nil {
		return domain.RoleUnknown, err
	}
	if err := workflow.Authorize(role, op); err != nil {
		s.LogDebug(ctx, "Operation denied",
			slog.String("user_id", actingUserID),
			slog.String("role", role.String()),
			slog.String("operation", string(op)))
		return role, err
	}
	return role, nil
}
