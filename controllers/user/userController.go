package userController

import (
	"errors"
	"lms/database"
	"lms/ledger"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetUserData returns the local user record, materializing it from the
// identity provider on first access.
func GetUserData(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	user, err := ledger.EnsureUser(database.Database.Db, userID, utils.FetchProfile)
	if err != nil {
		if errors.Is(err, ledger.ErrUpstream) {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Identity provider unavailable, please try again!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}

// PurchaseCourse records a pending purchase and hands back the gateway's
// checkout URL. The purchase ID rides in the session metadata so the webhook
// can settle the right purchase later.
func PurchaseCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData, ok := c.Locals("validatedPurchase").(*struct {
		CourseID string `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if _, err := ledger.EnsureUser(db, userID, utils.FetchProfile); err != nil {
		if errors.Is(err, ledger.ErrUpstream) {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Identity provider unavailable, please try again!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve user!", nil)
	}

	purchase, err := ledger.CreatePurchase(db, reqData.CourseID, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course or user not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	var course models.Course
	if err := db.First(&course, "id = ?", purchase.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course!", nil)
	}

	session, err := utils.CreateCheckoutSession(purchase.ID, course.Title, purchase.Amount, c.Get("Origin"))
	if err != nil {
		log.Printf("Checkout session failed for purchase %s: %v", purchase.ID, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Payment gateway unavailable, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"session_url": session.URL,
	})
}

// UserEnrolledCourses lists the courses the user is enrolled in, with
// content, in enrollment order.
func UserEnrolledCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	db := database.Database.Db

	if _, err := ledger.EnsureUser(db, userID, utils.FetchProfile); err != nil {
		if errors.Is(err, ledger.ErrUpstream) {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Identity provider unavailable, please try again!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve user!", nil)
	}

	courses, err := ledger.EnrolledCourses(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrolledCourses": courses,
	})
}

// UpdateCourseProgress marks a lecture complete. Completing the same lecture
// twice is a successful no-op with its own message so clients can show
// "already done".
func UpdateCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		CourseID  string `json:"courseId"`
		LectureID string `json:"lectureId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	already, err := ledger.MarkCompleted(database.Database.Db, userID, reqData.CourseID, reqData.LectureID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User is not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if already {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture already completed!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", nil)
}

// GetCourseProgress returns the user's completion set for a course. No
// progress yet is a valid empty response.
func GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData, ok := c.Locals("validatedGetProgress").(*struct {
		CourseID string `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	progress, err := ledger.GetProgress(database.Database.Db, userID, reqData.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progressData": progress,
	})
}

// AddRating upserts the user's rating for a course.
func AddRating(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData, ok := c.Locals("validatedRating").(*struct {
		CourseID string `json:"courseId"`
		Rating   int    `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err := ledger.Rate(database.Database.Db, userID, reqData.CourseID, reqData.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidRating):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Rating must be between 1 and 5!", nil)
		case errors.Is(err, ledger.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User has not purchased this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add rating!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating added!", nil)
}
