package services

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
)

// AccountSvcFacade exposes the chart of accounts read-only, for picking line accounts.
type AccountSvcFacade interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams, actingUserID string) ([]domain.Account, error)
}
