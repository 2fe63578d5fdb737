package catalogRoutes

import (
	catalogController "learnmart/controllers/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes registers the public browsing endpoints
func SetupCatalogRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/categories", catalogController.ListCategories)
	api.Get("/categories/:id/page", catalogController.CatalogPage)
}
