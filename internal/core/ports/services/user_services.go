package services

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID. Users may read themselves; ADMIN may read anyone.
	GetUserByID(ctx context.Context, userID string, actingUserID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users. ADMIN only.
	ListUsers(ctx context.Context, params dto.ListUsersParams, actingUserID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data. ADMIN only.
type UserWriterSvc interface {
	// CreateUser creates a new active user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actingUserID string) (*domain.User, error)

	// UpdateUserRole changes a user's role. Admins cannot change their own role.
	UpdateUserRole(ctx context.Context, userID string, req dto.UpdateUserRoleRequest, actingUserID string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeactivateUser soft-deletes a user. Admins cannot deactivate themselves.
	DeactivateUser(ctx context.Context, userID string, actingUserID string) error
}

// RoleResolver maps an authenticated user to the role used for authorization.
type RoleResolver interface {
	// ResolveRole returns the effective role of userID. Unknown users yield apperrors.ErrUnauthorized.
	ResolveRole(ctx context.Context, userID string) (domain.Role, error)
}

// UserBootstrapper seeds the first administrator of an empty deployment.
type UserBootstrapper interface {
	// EnsureAdmin creates an ADMIN with the given credentials unless a live user already has that email.
	EnsureAdmin(ctx context.Context, email string, password string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	RoleResolver
	UserBootstrapper
}
