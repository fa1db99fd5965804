package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/dto"
	"github.com/goldendrops/storefront/internal/catalog"
	"github.com/goldendrops/storefront/internal/service"
)

// ProductHandler serves catalog browsing and admin product management.
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler constructs handler.
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List GET /api/products.
//
// Filters come from the query string and are ignored when malformed.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext(), catalog.Params{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		Featured:   c.Query("featured"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
		Sort:       c.Query("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "products": products})
}

// Search GET /api/products/search/query?q=.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	products, err := h.catalog.SearchProducts(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "products": products})
}

// Get GET /api/products/:id.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "product": product})
}

// Create POST /api/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Check(req.ForCreate()); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

// Update PUT /api/products/:id.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// Delete DELETE /api/products/:id. Products are deactivated, not removed.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}
