package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/auth"
	"github.com/goldendrops/storefront/internal/domain"
	apperrors "github.com/goldendrops/storefront/pkg/util/errorutil"
)

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req dto.Validatable) error {
	if err := parseBody(c, req); err != nil {
		return err
	}
	return dto.Check(req)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewBadRequest("INVALID_PAYLOAD", "invalid payload")
	}
	return nil
}

// userPrincipal returns the user attached by the guard. Routes are only
// mounted behind RequireUser, so a miss is a wiring bug.
func userPrincipal(c *fiber.Ctx) (*domain.User, error) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Access denied. User authentication required.")
	}
	return user, nil
}

func adminPrincipal(c *fiber.Ctx) (*domain.Admin, error) {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Access denied. Admin privileges required.")
	}
	return admin, nil
}
