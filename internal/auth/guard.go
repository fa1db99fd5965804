package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/observability"
)

const identityKey = "auth_identity"

// CredentialStore looks accounts up in the collection named by variant.
// Both methods return (nil, nil) when no account matches.
type CredentialStore interface {
	FindAccountByID(ctx context.Context, id string, variant domain.AccountVariant) (domain.AccountRecord, error)
	FindAccountByEmail(ctx context.Context, email string, variant domain.AccountVariant) (domain.AccountRecord, error)
}

// TokenVerifier verifies identity tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Identity is attached to the request once the guard accepts it. Account is
// nil when only the bearer check ran.
type Identity struct {
	Claims  *Claims
	Account domain.AccountRecord
}

// Guard gates protected routes.
type Guard struct {
	tokens TokenVerifier
	store  CredentialStore
	logger *zap.Logger
}

// NewGuard constructs the guard.
func NewGuard(tokens TokenVerifier, store CredentialStore, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{tokens: tokens, store: store, logger: logger}
}

// RequireUser admits active users only.
func (g *Guard) RequireUser() fiber.Handler {
	return g.require(UserScope)
}

// RequireAdmin admits active admins and superadmins only.
func (g *Guard) RequireAdmin() fiber.Handler {
	return g.require(AdminScope)
}

func (g *Guard) require(scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := g.VerifyHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		account, err := g.Authorize(c.UserContext(), claims, scope)
		if err != nil {
			return err
		}
		c.Locals(identityKey, &Identity{Claims: claims, Account: account})
		return c.Next()
	}
}

// VerifyHeader extracts the bearer token from an Authorization header value
// and verifies it.
func (g *Guard) VerifyHeader(header string) (*Claims, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, missingTokenError()
	}
	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("token rejected", zap.Error(err))
		return nil, invalidTokenError()
	}
	return claims, nil
}

// Authorize checks the role claim against scope and loads the live account.
func (g *Guard) Authorize(ctx context.Context, claims *Claims, scope Scope) (domain.AccountRecord, error) {
	if !scope.Admits(claims.Role) {
		return nil, roleMismatchError(scope)
	}

	ctx, span := observability.StartSpan(ctx, "auth.guard.load_account",
		attribute.String("scope", scope.Name),
		attribute.String("role", string(claims.Role)),
	)
	account, err := g.store.FindAccountByID(ctx, claims.SubjectID, scope.Variant)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, authenticationError(err)
	}
	if account == nil || !account.Base().Active {
		return nil, accountInactiveError(scope)
	}
	return account, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// IdentityFromContext retrieves what the guard attached.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	identity, ok := c.Locals(identityKey).(*Identity)
	return identity, ok && identity != nil
}

// UserFromContext returns the user attached by RequireUser.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		return nil, false
	}
	user, ok := identity.Account.(*domain.User)
	return user, ok && user != nil
}

// AdminFromContext returns the admin attached by RequireAdmin.
func AdminFromContext(c *fiber.Ctx) (*domain.Admin, bool) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		return nil, false
	}
	admin, ok := identity.Account.(*domain.Admin)
	return admin, ok && admin != nil
}
