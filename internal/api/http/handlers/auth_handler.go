package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/service"
)

// AuthHandler exposes signup and login for users and admins.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// UserSignup handles POST /api/auth/user/signup.
func (h *AuthHandler) UserSignup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.Normalize()

	session, err := h.auth.SignupUser(c.UserContext(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "User registered successfully",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"user":      dto.NewUserResponse(session.User),
	})
}

// UserLogin handles POST /api/auth/user/login.
func (h *AuthHandler) UserLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Login successful",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"user":      dto.NewUserResponse(session.User),
	})
}

// AdminSignup handles POST /api/auth/admin/signup.
func (h *AuthHandler) AdminSignup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.Normalize()

	session, err := h.auth.SignupAdmin(c.UserContext(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Admin registered successfully",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"admin":     dto.NewAdminResponse(session.Admin),
	})
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Admin login successful",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"admin":     dto.NewAdminResponse(session.Admin),
	})
}
