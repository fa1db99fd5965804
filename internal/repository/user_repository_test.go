package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldendrops/storefront/internal/domain"
)

var userCols = []string{"id", "name", "email", "password_hash", "phone", "address", "role", "is_active", "created_at", "updated_at"}

const userID = "6f1c5a0e-3b1d-4f7a-9a57-2d8f0c1b9e11"

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := NewUserRepository(mock)
	ctx := context.Background()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=$1")).
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows(userCols).
				AddRow(userID, "Asha", "a@x.com", "hash", "", domain.Address{City: "Pune"}, domain.RoleUser, true, now, now))

		user, err := r.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, "Pune", user.Address.City)
		assert.True(t, user.Active)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=$1")).
			WithArgs("A@x.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, "A@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=$1")).
			WithArgs("a@x.com").
			WillReturnError(errors.New("db error"))

		_, err := r.GetByEmail(ctx, "a@x.com")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_MalformedID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user, err := NewUserRepository(mock).GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := NewUserRepository(mock)
	ctx := context.Background()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		user := &domain.User{Account: domain.Account{Name: "Asha", Email: "a@x.com", PasswordHash: "hash", Role: domain.RoleUser, Active: true}}
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), "Asha", "a@x.com", "hash", "", domain.Address{}, domain.RoleUser, true).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, r.Create(ctx, user))
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := &domain.User{Account: domain.Account{Name: "Asha", Email: "a@x.com", PasswordHash: "hash", Role: domain.RoleUser, Active: true}}
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), "Asha", "a@x.com", "hash", "", domain.Address{}, domain.RoleUser, true).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := r.Create(ctx, user)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET is_active=$1")).
		WithArgs(false, userID).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(userID, "Asha", "a@x.com", "hash", "", domain.Address{}, domain.RoleUser, false, now, now))

	user, err := NewUserRepository(mock).SetActive(context.Background(), userID, false)
	require.NoError(t, err)
	assert.False(t, user.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Count(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users")).
		WillReturnRows(pgxmock.NewRows([]string{"count", "active"}).AddRow(int64(7), int64(5)))

	total, active, err := NewUserRepository(mock).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, int64(5), active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{"id", "name", "email", "password_hash", "role", "permissions", "is_active", "last_login", "created_at", "updated_at"}
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM admins WHERE id=$1")).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(userID, "Root", "root@x.com", "hash", domain.RoleSuperAdmin, domain.DefaultAdminPermissions(), true, (*time.Time)(nil), now, now))

	admin, err := NewAdminRepository(mock).GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, admin.Role)
	assert.Len(t, admin.Permissions, 5)
	assert.Nil(t, admin.LastLogin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_UpdateLastLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := NewAdminRepository(mock)
	at := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET last_login=$1")).
		WithArgs(at, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdateLastLogin(context.Background(), userID, at))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET last_login=$1")).
		WithArgs(at, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, r.UpdateLastLogin(context.Background(), userID, at), ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
