package educatorRoutes

import (
	controllers "lms/controllers/educator"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupEducatorRoutes sets up all educator routes
func SetupEducatorRoutes(app *fiber.App) {
	educatorGroup := app.Group("/api/educator")

	// Role upgrade needs authentication but not the educator role yet
	educatorGroup.Post("/update-role", middleware.JWTMiddleware, controllers.UpdateRoleToEducator)

	educatorGroup.Post("/add-course", middleware.JWTMiddleware, middleware.RequireEducator, validators.AddCourse(), controllers.AddCourse)
	educatorGroup.Put("/course/:id", middleware.JWTMiddleware, middleware.RequireEducator, validators.UpdateCourse(), controllers.UpdateCourse)
	educatorGroup.Delete("/course/:id", middleware.JWTMiddleware, middleware.RequireEducator, controllers.DeleteCourse)
	educatorGroup.Get("/courses", middleware.JWTMiddleware, middleware.RequireEducator, controllers.GetEducatorCourses)
	educatorGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.RequireEducator, controllers.Dashboard)
	educatorGroup.Get("/enrolled-students", middleware.JWTMiddleware, middleware.RequireEducator, controllers.EnrolledStudents)
}
