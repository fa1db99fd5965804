package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/service"
)

// OrderHandler lets signed-in users place and list their orders.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler constructs handler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Place POST /api/orders.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	user, err := userPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PlaceOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), user, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// List GET /api/orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	user, err := userPrincipal(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListForUser(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(orders), "orders": orders})
}
