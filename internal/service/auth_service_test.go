package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/events"
)

func TestAuthService_SignupLoginDuplicate(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()

	signup, err := f.auth.SignupUser(ctx, SignupInput{Name: "Asha", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, signup.Token)
	assert.Equal(t, domain.RoleUser, signup.User.Role)
	assert.True(t, signup.User.Active)
	assert.NotEqual(t, "secret1", signup.User.PasswordHash)

	login, err := f.auth.LoginUser(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	claims, err := f.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, signup.User.ID, claims.SubjectID)

	again, err := f.auth.SignupUser(ctx, SignupInput{Name: "Asha", Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Nil(t, again)

	assert.Equal(t, []events.EventType{events.EventUserSignedUp}, f.dispatcher.types())
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()

	s, err := f.auth.SignupUser(ctx, SignupInput{Name: "Asha", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.auth.LoginUser(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.LoginUser(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.LoginUser(ctx, "A@X.COM", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "emails match exactly")

	_, err = f.store.Users().SetActive(ctx, s.User.ID, false)
	require.NoError(t, err)

	_, err = f.auth.LoginUser(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "deactivation is not disclosed without the password")

	_, err = f.auth.LoginUser(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	_, err = f.auth.LoginAdmin(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "users cannot sign in as admins")
}

func TestAuthService_AdminFlow(t *testing.T) {
	f := newFixture(t, config.AuthConfig{AllowAdminSignup: true})
	ctx := context.Background()
	at := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	f.auth.now = fixedClock(at)

	// The same email may exist as a user and as an admin.
	_, err := f.auth.SignupUser(ctx, SignupInput{Name: "Ravi", Email: "ops@x.com", Password: "secret1"})
	require.NoError(t, err)

	signup, err := f.auth.SignupAdmin(ctx, SignupInput{Name: "Ravi", Email: "ops@x.com", Password: "admin-secret"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, signup.Admin.Role)
	assert.Equal(t, domain.DefaultAdminPermissions(), signup.Admin.Permissions)

	_, err = f.auth.SignupAdmin(ctx, SignupInput{Name: "Ravi", Email: "ops@x.com", Password: "admin-secret"})
	assert.ErrorIs(t, err, ErrDuplicateAdmin)

	login, err := f.auth.LoginAdmin(ctx, "ops@x.com", "admin-secret")
	require.NoError(t, err)
	require.NotNil(t, login.Admin.LastLogin)
	assert.Equal(t, at, *login.Admin.LastLogin)

	stored, err := f.store.Admins().GetByID(ctx, login.Admin.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.Equal(t, at, *stored.LastLogin)

	claims, err := f.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_AdminSignupClosed(t *testing.T) {
	f := newFixture(t, config.AuthConfig{AllowAdminSignup: false})

	_, err := f.auth.SignupAdmin(context.Background(), SignupInput{Name: "Ravi", Email: "ops@x.com", Password: "admin-secret"})
	assert.ErrorIs(t, err, ErrAdminSignupClosed)
}

func TestAuthService_StorageFailure(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	f.store.Err = errors.New("connection reset")

	_, err := f.auth.SignupUser(context.Background(), SignupInput{Name: "Asha", Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUser)

	_, err = f.auth.LoginUser(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
