package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/service"
)

// CategoryHandler serves the public category endpoints and their admin CRUD.
type CategoryHandler struct {
	catalog *service.CatalogService
}

// NewCategoryHandler constructs handler.
func NewCategoryHandler(catalog *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List GET /api/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(categories), "categories": categories})
}

// Get GET /api/categories/:id.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "category": category})
}

// Products GET /api/categories/:id/products.
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	products, err := h.catalog.CategoryProducts(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "products": products})
}

// Create POST /api/categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Check(req.ForCreate()); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Category created successfully",
		"category": category,
	})
}

// Update PUT /api/categories/:id.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.UserContext(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Category updated successfully",
		"category": category,
	})
}

// Delete DELETE /api/categories/:id.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted successfully"})
}
