package pgsql

import (
	"context"
	"testing"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountRowColumns = []string{"account_id", "code", "name", "account_type", "is_active"}

func newAccountRepo(t *testing.T) (pgxmock.PgxPoolIface, *PgxAccountRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &PgxAccountRepository{db: mock}
}

func TestAccountRepository_FindAccountByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock, repo := newAccountRepo(t)
		mock.ExpectQuery(`FROM accounts WHERE account_id = \$1`).
			WithArgs("acc-cash").
			WillReturnRows(pgxmock.NewRows(accountRowColumns).AddRow("acc-cash", "1000", "Cash", "ASSET", true))

		account, err := repo.FindAccountByID(ctx, "acc-cash")
		require.NoError(t, err)
		assert.Equal(t, domain.Asset, account.AccountType)
		assert.True(t, account.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newAccountRepo(t)
		mock.ExpectQuery(`FROM accounts WHERE account_id = \$1`).WithArgs("nope").WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindAccountByID(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_FindAccountsByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("missing IDs are absent from the result", func(t *testing.T) {
		mock, repo := newAccountRepo(t)
		ids := []string{"acc-cash", "acc-ghost"}
		mock.ExpectQuery(`WHERE account_id = ANY\(\$1\)`).
			WithArgs(ids).
			WillReturnRows(pgxmock.NewRows(accountRowColumns).AddRow("acc-cash", "1000", "Cash", "ASSET", true))

		found, err := repo.FindAccountsByIDs(ctx, ids)
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Contains(t, found, "acc-cash")
		assert.NotContains(t, found, "acc-ghost")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no IDs skips the query", func(t *testing.T) {
		mock, repo := newAccountRepo(t)

		found, err := repo.FindAccountsByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_ListAccounts(t *testing.T) {
	ctx := context.Background()
	mock, repo := newAccountRepo(t)

	mock.ExpectQuery(`FROM accounts WHERE \(NOT \$1 OR is_active\) ORDER BY code`).
		WithArgs(true, 100, 0).
		WillReturnRows(pgxmock.NewRows(accountRowColumns).
			AddRow("acc-cash", "1000", "Cash", "ASSET", true).
			AddRow("acc-rent", "6100", "Rent", "EXPENSE", true))

	accounts, err := repo.ListAccounts(ctx, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "6100", accounts[1].Code)
	assert.Equal(t, domain.Expense, accounts[1].AccountType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
