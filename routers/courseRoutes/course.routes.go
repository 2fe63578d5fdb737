package courseRoutes

import (
	courseController "learnmart/controllers/course"
	"learnmart/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the authoring endpoints. All of them require
// a valid bearer token.
func SetupCourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.JWTMiddleware)

	api.Post("/courses", courseController.CreateCourse)
	api.Get("/courses/:id", courseController.GetCourse)
	api.Patch("/courses/:id", courseController.UpdateCourse)
	api.Put("/courses/:id/exam", courseController.SaveExam)
	api.Post("/courses/:id/publish", courseController.PublishCourse)

	api.Post("/courses/:id/sections", courseController.CreateSection)
	api.Put("/sections/:id", courseController.RenameSection)
	api.Delete("/sections/:id", courseController.DeleteSection)

	api.Post("/sections/:id/lectures", courseController.CreateLecture)
	api.Put("/sections/:sectionId/lectures/:id", courseController.UpdateLecture)
	api.Delete("/sections/:sectionId/lectures/:id", courseController.DeleteLecture)
}
