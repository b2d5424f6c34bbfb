package repositories

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data. The chart
// is maintained elsewhere, so there is no writer.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs with no
	// matching account are absent from the result rather than an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error)
}
