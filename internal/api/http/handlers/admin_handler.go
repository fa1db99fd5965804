package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/service"
)

// AdminHandler backs the admin back office.
type AdminHandler struct {
	admin  *service.AdminService
	orders *service.OrderService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, orders *service.OrderService) *AdminHandler {
	return &AdminHandler{admin: admin, orders: orders}
}

// Dashboard GET /api/admin/dashboard and /api/admin/stats.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.admin.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// Users GET /api/admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(users), "users": dto.NewUserResponses(users)})
}

// UserStatus PATCH /api/admin/users/:id/status.
func (h *AdminHandler) UserStatus(c *fiber.Ctx) error {
	actor, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UserStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.admin.SetUserStatus(c.UserContext(), actor, c.Params("id"), *req.IsActive)
	if err != nil {
		return err
	}
	message := "User deactivated successfully"
	if user.Active {
		message = "User activated successfully"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "user": dto.NewUserResponse(user)})
}

// Profile GET /api/admin/profile.
func (h *AdminHandler) Profile(c *fiber.Ctx) error {
	actor, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "admin": dto.NewAdminResponse(actor)})
}

// Orders GET /api/admin/orders.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(orders), "orders": orders})
}

// OrderStatus PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) OrderStatus(c *fiber.Ctx) error {
	actor, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.OrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), actor, c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order status updated", "order": order})
}
