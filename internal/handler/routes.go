package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Pos       *PosHandler
	Inventory *InventoryHandler
	Dashboard *DashboardHandler
	Catalog   *CatalogHandler
	Auth      *AuthHandler
	Admin     *AdminHandler
	Users     *UserHandler
}

// Register mounts the REST routes. Guards protect the reset and account
// management routes; the rest stays open for the browser client.
func Register(app *fiber.App, h Handlers, guards ...fiber.Handler) {
	app.Get("/health", Health)

	api := app.Group("/api")

	api.Post("/login", h.Auth.Login)

	api.Post("/pos/checkout", h.Pos.Checkout)

	api.Get("/inventory", h.Inventory.GetItems)
	api.Post("/inventory", h.Inventory.CreateItem)
	api.Put("/inventory/:id", h.Inventory.UpdateItem)
	api.Delete("/inventory/:id", h.Inventory.DeleteItem)

	api.Get("/transactions", h.Inventory.GetTransactions)
	api.Get("/transactions/:id", h.Inventory.GetTransaction)

	api.Get("/categories", h.Catalog.GetCategories)
	api.Post("/categories", h.Catalog.CreateCategory)
	api.Delete("/categories/:id", h.Catalog.DeleteCategory)

	api.Get("/suppliers", h.Catalog.GetSuppliers)
	api.Post("/suppliers", h.Catalog.CreateSupplier)
	api.Delete("/suppliers/:id", h.Catalog.DeleteSupplier)

	api.Get("/dashboard", h.Dashboard.GetDashboard)
	api.Get("/analytics/sales", h.Dashboard.GetSalesTrend)
	api.Get("/analytics/top-products", h.Dashboard.GetTopProducts)
	api.Get("/analytics/daily-sales", h.Dashboard.GetDailySales)

	api.Post("/reset", guarded(guards, h.Admin.Reset)...)
	api.Get("/users", guarded(guards, h.Users.GetUsers)...)
	api.Post("/users", guarded(guards, h.Users.CreateUser)...)
	api.Delete("/users/:id", guarded(guards, h.Users.DeleteUser)...)
}

func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	return append(append(make([]fiber.Handler, 0, len(guards)+1), guards...), h)
}
