package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/core/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminUser() *domain.User {
	return &domain.User{UserID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}
}

func TestUserService_ResolveRole(t *testing.T) {
	ctx := context.Background()

	t.Run("active user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleManager, IsActive: true}, nil).Once()

		role, err := svc.ResolveRole(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, role)
		repo.AssertExpectations(t)
	})

	t.Run("deactivated user drops to viewer", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		deletedAt := time.Now()
		repo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleAdmin, DeletedAt: &deletedAt}, nil).Once()

		role, err := svc.ResolveRole(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleViewer, role)
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.ResolveRole(ctx, "ghost")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("store failure is passed through", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		dbErr := errors.New("pool closed")
		repo.On("FindUserByID", ctx, "u1").Return(nil, dbErr).Once()

		_, err := svc.ResolveRole(ctx, "u1")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: " Priya ", Email: "Priya@Example.com", Password: "correct horse", Role: "MANAGER"}

	t.Run("admin creates user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Once()
		repo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "priya@example.com" && u.Name == "Priya" && u.Role == domain.RoleManager &&
				u.IsActive && u.CreatedBy == "admin-1" && utils.CheckPasswordHash("correct horse", u.PasswordHash)
		})).Return(nil).Once()

		user, err := svc.CreateUser(ctx, req, "admin-1")
		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("manager may not create users", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "m1").Return(&domain.User{UserID: "m1", Role: domain.RoleManager, IsActive: true}, nil).Once()

		_, err := svc.CreateUser(ctx, req, "m1")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Once()
		repo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

		_, err := svc.CreateUser(ctx, req, "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

func TestUserService_GetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("users may read themselves", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		self := &domain.User{UserID: "u1", Role: domain.RoleViewer, IsActive: true}
		repo.On("FindUserByID", ctx, "u1").Return(self, nil).Once()

		user, err := svc.GetUserByID(ctx, "u1", "u1")
		require.NoError(t, err)
		assert.Equal(t, self, user)
		repo.AssertExpectations(t)
	})

	t.Run("reading others needs admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleUser, IsActive: true}, nil).Once()

		_, err := svc.GetUserByID(ctx, "u2", "u1")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestUserService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		updated := &domain.User{UserID: "u2", Role: domain.RoleViewer, IsActive: true}
		repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Once()
		repo.On("UpdateUserRole", ctx, "u2", domain.RoleViewer, "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
		repo.On("FindUserByID", ctx, "u2").Return(updated, nil).Once()

		user, err := svc.UpdateUserRole(ctx, "u2", dto.UpdateUserRoleRequest{Role: "VIEWER"}, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleViewer, user.Role)
		repo.AssertExpectations(t)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Once()

		_, err := svc.UpdateUserRole(ctx, "admin-1", dto.UpdateUserRoleRequest{Role: "USER"}, "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Once()

		_, err := svc.UpdateUserRole(ctx, "u2", dto.UpdateUserRoleRequest{Role: "OWNER"}, "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestUserService_DeactivateUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Twice()
	repo.On("MarkUserDeleted", ctx, "u2", mock.AnythingOfType("time.Time"), "admin-1").Return(nil).Once()

	require.NoError(t, svc.DeactivateUser(ctx, "u2", "admin-1"))
	assert.ErrorIs(t, svc.DeactivateUser(ctx, "admin-1", "admin-1"), apperrors.ErrForbidden)
	repo.AssertExpectations(t)
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	repo.On("FindUserByID", ctx, "admin-1").Return(adminUser(), nil).Once()
	repo.On("FindUsers", ctx, 20, 40).Return([]domain.User{*adminUser()}, nil).Once()

	users, err := svc.ListUsers(ctx, dto.ListUsersParams{Limit: 20, Offset: 40}, "admin-1")
	require.NoError(t, err)
	assert.Len(t, users, 1)
	repo.AssertExpectations(t)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the first admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByEmail", ctx, "root@example.com").Return(nil, apperrors.ErrNotFound).Once()
		repo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Role == domain.RoleAdmin && u.Email == "root@example.com" && u.CreatedBy == "system"
		})).Return(nil).Once()

		require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "s3cret-password"))
		repo.AssertExpectations(t)
	})

	t.Run("existing user is left alone", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := services.NewUserService(repo)
		repo.On("FindUserByEmail", ctx, "admin@example.com").Return(adminUser(), nil).Once()

		require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "whatever-password"))
		repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})
}
