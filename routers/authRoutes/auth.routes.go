package authRoutes

import (
	authController "learnmart/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the stub server's development token endpoint
func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/token", authController.IssueToken)
}
