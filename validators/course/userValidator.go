package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ============ Student-facing Validators ============

// PurchaseCourse validates a checkout initiation request
func PurchaseCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.CourseID = strings.TrimSpace(reqData.CourseID)
		if reqData.CourseID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course ID is required!"})
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}

// UpdateProgress validates a lecture completion request
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  string `json:"courseId"`
			LectureID string `json:"lectureId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.CourseID = strings.TrimSpace(reqData.CourseID)
		reqData.LectureID = strings.TrimSpace(reqData.LectureID)

		if reqData.CourseID == "" {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.LectureID == "" {
			errors["lectureId"] = "Lecture ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// GetProgress validates a progress read request
func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.CourseID = strings.TrimSpace(reqData.CourseID)
		if reqData.CourseID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course ID is required!"})
		}

		c.Locals("validatedGetProgress", reqData)
		return c.Next()
	}
}

// AddRating validates a rating request. The [1,5] range itself is enforced
// by the ledger; this only checks shape.
func AddRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"courseId"`
			Rating   int    `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.CourseID = strings.TrimSpace(reqData.CourseID)
		if reqData.CourseID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course ID is required!"})
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}
