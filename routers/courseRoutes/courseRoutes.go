package courseRoutes

import (
	controllers "lms/controllers/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/course")

	courseGroup.Get("/all", controllers.GetAllCourses)
	courseGroup.Get("/:id", controllers.GetCourseByID)
}
