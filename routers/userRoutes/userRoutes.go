package userRoutes

import (
	controllers "lms/controllers/user"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up all student-facing routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user")

	userGroup.Get("/data", middleware.JWTMiddleware, controllers.GetUserData)
	userGroup.Post("/purchase", middleware.JWTMiddleware, validators.PurchaseCourse(), controllers.PurchaseCourse)
	userGroup.Get("/enrolled-courses", middleware.JWTMiddleware, controllers.UserEnrolledCourses)
	userGroup.Post("/update-course-progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateCourseProgress)
	userGroup.Post("/get-course-progress", middleware.JWTMiddleware, validators.GetProgress(), controllers.GetCourseProgress)
	userGroup.Post("/add-rating", middleware.JWTMiddleware, validators.AddRating(), controllers.AddRating)
}
