package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goldendrops/storefront/internal/api/http/handlers"
	"github.com/goldendrops/storefront/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Profile    *handlers.ProfileHandler
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	Orders     *handlers.OrderHandler
	Admin      *handlers.AdminHandler
	Guard      *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
		app.Get("/health/metrics", cfg.Health.Metrics)
	}

	api := app.Group("/api")
	requireUser := cfg.Guard.RequireUser()
	requireAdmin := cfg.Guard.RequireAdmin()

	authGroup := api.Group("/auth")
	authGroup.Post("/user/signup", cfg.Auth.UserSignup)
	authGroup.Post("/user/login", cfg.Auth.UserLogin)
	authGroup.Post("/admin/signup", cfg.Auth.AdminSignup)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)

	user := api.Group("/user", requireUser)
	user.Get("/profile", cfg.Profile.Get)
	user.Put("/profile", cfg.Profile.Update)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Get("/:id/products", cfg.Categories.Products)
	categories.Post("/", requireAdmin, cfg.Categories.Create)
	categories.Put("/:id", requireAdmin, cfg.Categories.Update)
	categories.Delete("/:id", requireAdmin, cfg.Categories.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/search/query", cfg.Products.Search)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", requireAdmin, cfg.Products.Create)
	products.Put("/:id", requireAdmin, cfg.Products.Update)
	products.Delete("/:id", requireAdmin, cfg.Products.Delete)

	orders := api.Group("/orders", requireUser)
	orders.Post("/", cfg.Orders.Place)
	orders.Get("/", cfg.Orders.List)

	admin := api.Group("/admin", requireAdmin)
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/stats", cfg.Admin.Dashboard)
	admin.Get("/users", cfg.Admin.Users)
	admin.Patch("/users/:id/status", cfg.Admin.UserStatus)
	admin.Get("/profile", cfg.Admin.Profile)
	admin.Get("/orders", cfg.Admin.Orders)
	admin.Patch("/orders/:id/status", cfg.Admin.OrderStatus)
}
