package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewAccountService creates a read-only service over the chart of accounts.
func NewAccountService(accountRepo portsrepo.AccountReader, roles portssvc.RoleResolver) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{Roles: roles},
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	if _, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpView); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams, actingUserID string) ([]domain.Account, error) {
	if _, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpView); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, !params.IncludeInactive, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}
