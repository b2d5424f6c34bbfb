package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/utils"
	"github.com/google/uuid"
)

// systemActor is recorded as creator of users seeded at start-up.
const systemActor = "system"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new UserService. It also serves as the RoleResolver for other services.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
	svc.Roles = svc
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) ResolveRole(ctx context.Context, userID string) (domain.Role, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.RoleUnknown, fmt.Errorf("%w: unknown user %s", apperrors.ErrUnauthorized, userID)
		}
		return domain.RoleUnknown, fmt.Errorf("failed to resolve role for user %s: %w", userID, err)
	}
	return user.EffectiveRole(), nil
}

func (s *userService) requireAdmin(ctx context.Context, actingUserID string) error {
	role, err := s.ResolveRole(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !role.Satisfies(domain.RoleAdmin) {
		return fmt.Errorf("%w: role %s may not manage users", apperrors.ErrForbidden, role)
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string, actingUserID string) (*domain.User, error) {
	if userID != actingUserID {
		if err := s.requireAdmin(ctx, actingUserID); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams, actingUserID string) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindUsers(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actingUserID string) (*domain.User, error) {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	user, err := s.newUser(req.Name, req.Email, req.Password, role, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create user", slog.String("email", user.Email))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("new_user_id", user.UserID), slog.String("role", role.String()))
	return user, nil
}

func (s *userService) newUser(name, email, password string, role domain.Role, createdBy string) (*domain.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, userID string, req dto.UpdateUserRoleRequest, actingUserID string) (*domain.User, error) {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	if userID == actingUserID {
		return nil, fmt.Errorf("%w: administrators cannot change their own role", apperrors.ErrForbidden)
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.userRepo.UpdateUserRole(ctx, userID, role, actingUserID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update user role", slog.String("target_user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User role changed", slog.String("target_user_id", userID), slog.String("role", role.String()))
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, actingUserID string) error {
	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return err
	}
	if userID == actingUserID {
		return fmt.Errorf("%w: administrators cannot deactivate themselves", apperrors.ErrForbidden)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.now(), actingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate user", slog.String("target_user_id", userID))
		}
		return err
	}

	s.LogInfo(ctx, "User deactivated", slog.String("target_user_id", userID))
	return nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email string, password string) error {
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domain.RoleAdmin {
			s.GetLogger(ctx).Warn("Bootstrap admin email belongs to a non-admin user", slog.String("user_id", existing.UserID))
		}
		return nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	user, err := s.newUser("Administrator", email, password, domain.RoleAdmin, systemActor)
	if err != nil {
		return err
	}
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.LogInfo(ctx, "Bootstrap admin created", slog.String("user_id", user.UserID))
	return nil
}
