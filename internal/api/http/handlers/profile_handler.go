package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/service"
)

// ProfileHandler serves the signed-in user's profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := userPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// Update handles PUT /api/user/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user, err := userPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.profiles.Update(c.UserContext(), user, service.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(updated),
	})
}
