package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldendrops/storefront/internal/domain"
	apperrors "github.com/goldendrops/storefront/pkg/util/errorutil"
)

// fakeStore is an in-memory CredentialStore with an injectable failure.
type fakeStore struct {
	users  map[string]*domain.User
	admins map[string]*domain.Admin
	err    error
	calls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*domain.User{}, admins: map[string]*domain.Admin{}}
}

func (s *fakeStore) FindAccountByID(ctx context.Context, id string, variant domain.AccountVariant) (domain.AccountRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch variant {
	case domain.VariantUser:
		if u, ok := s.users[id]; ok {
			return u, nil
		}
	case domain.VariantAdmin:
		if a, ok := s.admins[id]; ok {
			return a, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindAccountByEmail(context.Context, string, domain.AccountVariant) (domain.AccountRecord, error) {
	return nil, nil
}

// spy records whether the protected handler ran.
type spy struct {
	invoked bool
}

func (s *spy) handler(c *fiber.Ctx) error {
	s.invoked = true
	identity, _ := IdentityFromContext(c)
	body := fiber.Map{"success": true, "role": identity.Claims.Role}
	if user, ok := UserFromContext(c); ok {
		body["user"] = user.ID
	}
	if admin, ok := AdminFromContext(c); ok {
		body["admin"] = admin.ID
	}
	return c.JSON(body)
}

type guardFixture struct {
	tokens *TokenService
	store  *fakeStore
	guard  *Guard
	clock  *fakeClock
}

func newGuardFixture() *guardFixture {
	clock := newClock()
	tokens := NewTokenService("guard-secret", WithClock(clock.Now))
	store := newFakeStore()
	store.users["user-active"] = &domain.User{Account: domain.Account{ID: "user-active", Role: domain.RoleUser, Active: true}}
	store.users["user-inactive"] = &domain.User{Account: domain.Account{ID: "user-inactive", Role: domain.RoleUser, Active: false}}
	store.admins["admin-active"] = &domain.Admin{Account: domain.Account{ID: "admin-active", Role: domain.RoleAdmin, Active: true}}
	store.admins["super-active"] = &domain.Admin{Account: domain.Account{ID: "super-active", Role: domain.RoleSuperAdmin, Active: true}}
	store.admins["admin-inactive"] = &domain.Admin{Account: domain.Account{ID: "admin-inactive", Role: domain.RoleAdmin, Active: false}}
	return &guardFixture{tokens: tokens, store: store, guard: NewGuard(tokens, store, nil), clock: clock}
}

func (f *guardFixture) bearer(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	token, _, err := f.tokens.Issue(id, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *guardFixture) app(s *spy) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.Respond})
	app.Get("/user", f.guard.RequireUser(), s.handler)
	app.Get("/admin", f.guard.RequireAdmin(), s.handler)
	return app
}

func TestGuard_StateMachine(t *testing.T) {
	f := newGuardFixture()
	expired := func() string {
		past := NewTokenService("guard-secret", WithClock(func() time.Time { return f.clock.Now().Add(-8 * 24 * time.Hour) }))
		token, _, err := past.Issue("user-active", domain.RoleUser)
		require.NoError(t, err)
		return "Bearer " + token
	}()
	forged := func() string {
		token, _, err := NewTokenService("attacker", WithClock(f.clock.Now)).Issue("admin-active", domain.RoleAdmin)
		require.NoError(t, err)
		return "Bearer " + token
	}()

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantErr    error
		wantCode   string
	}{
		{name: "no header on user route", path: "/user", wantStatus: http.StatusUnauthorized, wantErr: ErrMissingToken, wantCode: "MISSING_TOKEN"},
		{name: "no header on admin route", path: "/admin", wantStatus: http.StatusUnauthorized, wantErr: ErrMissingToken, wantCode: "MISSING_TOKEN"},
		{name: "non bearer scheme", path: "/user", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantErr: ErrMissingToken, wantCode: "MISSING_TOKEN"},
		{name: "empty bearer", path: "/user", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantErr: ErrMissingToken, wantCode: "MISSING_TOKEN"},
		{name: "garbage token", path: "/user", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantErr: ErrInvalidOrExpiredToken, wantCode: "INVALID_TOKEN"},
		{name: "forged token", path: "/admin", header: forged, wantStatus: http.StatusUnauthorized, wantErr: ErrInvalidOrExpiredToken, wantCode: "INVALID_TOKEN"},
		{name: "expired token", path: "/user", header: expired, wantStatus: http.StatusUnauthorized, wantErr: ErrInvalidOrExpiredToken, wantCode: "INVALID_TOKEN"},
		{name: "admin token on user route", path: "/user", header: f.bearer(t, "admin-active", domain.RoleAdmin), wantStatus: http.StatusForbidden, wantErr: ErrRoleMismatch, wantCode: "ROLE_MISMATCH"},
		{name: "user token on admin route", path: "/admin", header: f.bearer(t, "user-active", domain.RoleUser), wantStatus: http.StatusForbidden, wantErr: ErrRoleMismatch, wantCode: "ROLE_MISMATCH"},
		{name: "unknown role", path: "/admin", header: f.bearer(t, "admin-active", domain.Role("owner")), wantStatus: http.StatusForbidden, wantErr: ErrRoleMismatch, wantCode: "ROLE_MISMATCH"},
		{name: "inactive user", path: "/user", header: f.bearer(t, "user-inactive", domain.RoleUser), wantStatus: http.StatusForbidden, wantErr: ErrAccountInactiveOrMissing, wantCode: "ACCOUNT_INACTIVE"},
		{name: "missing user", path: "/user", header: f.bearer(t, "user-ghost", domain.RoleUser), wantStatus: http.StatusForbidden, wantErr: ErrAccountInactiveOrMissing, wantCode: "ACCOUNT_INACTIVE"},
		{name: "inactive admin", path: "/admin", header: f.bearer(t, "admin-inactive", domain.RoleAdmin), wantStatus: http.StatusForbidden, wantErr: ErrAccountInactiveOrMissing, wantCode: "ACCOUNT_INACTIVE"},
		{name: "user id used as admin", path: "/admin", header: f.bearer(t, "user-active", domain.RoleAdmin), wantStatus: http.StatusForbidden, wantErr: ErrAccountInactiveOrMissing, wantCode: "ACCOUNT_INACTIVE"},
		{name: "active user", path: "/user", header: f.bearer(t, "user-active", domain.RoleUser), wantStatus: http.StatusOK},
		{name: "active admin", path: "/admin", header: f.bearer(t, "admin-active", domain.RoleAdmin), wantStatus: http.StatusOK},
		{name: "active superadmin", path: "/admin", header: f.bearer(t, "super-active", domain.RoleSuperAdmin), wantStatus: http.StatusOK},
		{name: "lowercase scheme", path: "/user", header: "bearer " + f.bearer(t, "user-active", domain.RoleUser)[len("Bearer "):], wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &spy{}
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := f.app(s).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			if tt.wantErr != nil {
				assert.False(t, s.invoked, "handler must not run")
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantCode, body["code"])
				assert.NotEmpty(t, body["message"])
				return
			}
			assert.True(t, s.invoked)
			assert.Equal(t, true, body["success"])
		})
	}
}

func TestGuard_SuperadminMatchesAdmin(t *testing.T) {
	f := newGuardFixture()

	for _, tc := range []struct {
		id   string
		role domain.Role
	}{
		{id: "admin-active", role: domain.RoleAdmin},
		{id: "super-active", role: domain.RoleSuperAdmin},
	} {
		claims, err := f.guard.VerifyHeader(f.bearer(t, tc.id, tc.role))
		require.NoError(t, err)

		account, err := f.guard.Authorize(context.Background(), claims, AdminScope)
		require.NoError(t, err)
		admin, ok := account.(*domain.Admin)
		require.True(t, ok)
		assert.Equal(t, tc.id, admin.ID)
	}
}

func TestGuard_ErrorsAreTagged(t *testing.T) {
	f := newGuardFixture()

	_, err := f.guard.VerifyHeader("")
	assert.ErrorIs(t, err, ErrMissingToken)

	expiredSvc := NewTokenService("guard-secret", WithClock(func() time.Time { return f.clock.Now().Add(-TokenTTL - time.Second) }))
	expiredToken, _, err := expiredSvc.Issue("user-active", domain.RoleUser)
	require.NoError(t, err)

	_, expiredErr := f.guard.VerifyHeader("Bearer " + expiredToken)
	_, invalidErr := f.guard.VerifyHeader("Bearer nope")
	require.ErrorIs(t, expiredErr, ErrInvalidOrExpiredToken)
	require.ErrorIs(t, invalidErr, ErrInvalidOrExpiredToken)
	assert.NotErrorIs(t, expiredErr, ErrExpiredToken, "expiry must not be distinguishable")
	assert.Equal(t, apperrors.ToDomainError(expiredErr).Message, apperrors.ToDomainError(invalidErr).Message)
	assert.Equal(t, apperrors.ToDomainError(expiredErr).Code, apperrors.ToDomainError(invalidErr).Code)
}

func TestGuard_StoreFailureIsInternal(t *testing.T) {
	f := newGuardFixture()
	f.store.err = errors.New("connection refused")
	s := &spy{}

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set(fiber.HeaderAuthorization, f.bearer(t, "user-active", domain.RoleUser))
	resp, err := f.app(s).Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, s.invoked)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Authentication error.", body["message"])
	assert.NotContains(t, body["message"], "connection refused")
}

func TestGuard_PropagatesCancellation(t *testing.T) {
	f := newGuardFixture()
	claims, err := f.guard.VerifyHeader(f.bearer(t, "user-active", domain.RoleUser))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.guard.Authorize(ctx, claims, UserScope)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGuard_RoleMismatchSkipsLookup(t *testing.T) {
	f := newGuardFixture()
	claims, err := f.guard.VerifyHeader(f.bearer(t, "admin-active", domain.RoleAdmin))
	require.NoError(t, err)

	_, err = f.guard.Authorize(context.Background(), claims, UserScope)
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.Zero(t, f.store.calls)
}

func TestScopeAdmits(t *testing.T) {
	assert.True(t, UserScope.Admits(domain.RoleUser))
	assert.False(t, UserScope.Admits(domain.RoleAdmin))
	assert.False(t, UserScope.Admits(domain.RoleSuperAdmin))
	assert.True(t, AdminScope.Admits(domain.RoleAdmin))
	assert.True(t, AdminScope.Admits(domain.RoleSuperAdmin))
	assert.False(t, AdminScope.Admits(domain.RoleUser))
	assert.False(t, AdminScope.Admits(domain.Role("")))
}
