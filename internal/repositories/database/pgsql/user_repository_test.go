package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"user_id", "name", "email", "role", "password_hash", "is_active", "deleted_at", "created_at", "created_by", "last_updated_at", "last_updated_by"}

func newUserRepo(t *testing.T) (pgxmock.PgxPoolIface, *PgxUserRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &PgxUserRepository{db: mock}
}

func TestUserRepository_SaveUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	user := domain.User{
		UserID:       "u1",
		Name:         "Priya",
		Email:        "priya@example.com",
		Role:         domain.RoleManager,
		PasswordHash: "hash",
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: "admin", LastUpdatedAt: now, LastUpdatedBy: "admin"},
	}

	t.Run("success", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs("u1", "Priya", "priya@example.com", "MANAGER", "hash", true, now, "admin", now, "admin").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, repo.SaveUser(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		mock.ExpectExec(`INSERT INTO users`).WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.SaveUser(ctx, user)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindUserByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("deactivated users are still returned", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		deletedAt := now.Add(time.Hour)
		mock.ExpectQuery(`FROM users WHERE user_id = \$1`).
			WithArgs("u1").
			WillReturnRows(pgxmock.NewRows(userRowColumns).
				AddRow("u1", "Priya", "priya@example.com", "MANAGER", "hash", false, &deletedAt, now, "admin", now, "admin"))

		user, err := repo.FindUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, user.Role)
		assert.False(t, user.IsActive)
		assert.Equal(t, domain.RoleViewer, user.EffectiveRole())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		mock.ExpectQuery(`FROM users WHERE user_id = \$1`).WithArgs("nobody").WillReturnError(pgx.ErrNoRows)

		user, err := repo.FindUserByID(ctx, "nobody")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindUserByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	mock, repo := newUserRepo(t)

	var notDeleted *time.Time
	mock.ExpectQuery(`lower\(email\) = lower\(\$1\) AND deleted_at IS NULL`).
		WithArgs("Priya@Example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u1", "Priya", "priya@example.com", "USER", "hash", true, notDeleted, now, "admin", now, "admin"))

	user, err := repo.FindUserByEmail(ctx, "Priya@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, domain.RoleUser, user.EffectiveRole())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUsers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	mock, repo := newUserRepo(t)

	var notDeleted *time.Time
	mock.ExpectQuery(`FROM users WHERE deleted_at IS NULL`).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u1", "Priya", "priya@example.com", "ADMIN", "hash", true, notDeleted, now, "admin", now, "admin").
			AddRow("u2", "Sam", "sam@example.com", "bogus", "hash", true, notDeleted, now, "admin", now, "admin"))

	users, err := repo.FindUsers(ctx, 0, -5)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, domain.RoleUnknown, users[1].Role, "unrecognised stored roles grant nothing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateUserRole(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		mock.ExpectExec(`UPDATE users`).
			WithArgs("VIEWER", at, "admin", "u1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateUserRole(ctx, "u1", domain.RoleViewer, "admin", at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		mock.ExpectExec(`UPDATE users`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateUserRole(ctx, "u9", domain.RoleViewer, "admin", at)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_MarkUserDeleted(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		mock.ExpectExec(`SET is_active = FALSE`).
			WithArgs(at, "admin", "u1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.MarkUserDeleted(ctx, "u1", at, "admin"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock, repo := newUserRepo(t)
		dbErr := errors.New("deadlock detected")
		mock.ExpectExec(`SET is_active = FALSE`).WillReturnError(dbErr)

		err := repo.MarkUserDeleted(ctx, "u1", at, "admin")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
