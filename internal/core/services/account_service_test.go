package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/core/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService(t *testing.T) {
	ctx := context.Background()
	cash := domain.Account{AccountID: "acc-cash", Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}

	t.Run("viewer lists active accounts", func(t *testing.T) {
		repo := new(MockAccountRepository)
		roles := new(MockRoleResolver)
		svc := services.NewAccountService(repo, roles)
		roles.On("ResolveRole", ctx, "v1").Return(domain.RoleViewer, nil).Once()
		repo.On("ListAccounts", ctx, true, 100, 0).Return([]domain.Account{cash}, nil).Once()

		accounts, err := svc.ListAccounts(ctx, dto.ListAccountsParams{Limit: 100}, "v1")
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
		repo.AssertExpectations(t)
	})

	t.Run("include inactive", func(t *testing.T) {
		repo := new(MockAccountRepository)
		roles := new(MockRoleResolver)
		svc := services.NewAccountService(repo, roles)
		roles.On("ResolveRole", ctx, "v1").Return(domain.RoleViewer, nil).Once()
		repo.On("ListAccounts", ctx, false, 50, 10).Return([]domain.Account{}, nil).Once()

		_, err := svc.ListAccounts(ctx, dto.ListAccountsParams{Limit: 50, Offset: 10, IncludeInactive: true}, "v1")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("get by id", func(t *testing.T) {
		repo := new(MockAccountRepository)
		roles := new(MockRoleResolver)
		svc := services.NewAccountService(repo, roles)
		roles.On("ResolveRole", ctx, "v1").Return(domain.RoleViewer, nil).Once()
		repo.On("FindAccountByID", ctx, "acc-cash").Return(&cash, nil).Once()

		account, err := svc.GetAccountByID(ctx, "acc-cash", "v1")
		require.NoError(t, err)
		assert.Equal(t, "1000", account.Code)
	})

	t.Run("unknown role sees nothing", func(t *testing.T) {
		repo := new(MockAccountRepository)
		roles := new(MockRoleResolver)
		svc := services.NewAccountService(repo, roles)
		roles.On("ResolveRole", ctx, "x").Return(domain.RoleUnknown, nil).Once()

		_, err := svc.GetAccountByID(ctx, "acc-cash", "x")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "FindAccountByID")
	})
}
