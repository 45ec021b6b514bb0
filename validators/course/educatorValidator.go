package courseValidator

import (
	"encoding/json"
	"fmt"
	"lms/middleware"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ============ Educator Validators ============

// LecturePayload is one lecture inside a chapter's content array.
type LecturePayload struct {
	LectureID     string `json:"lectureId"`
	Title         string `json:"lectureTitle" validate:"required"`
	Duration      int    `json:"lectureDuration" validate:"gte=0"`
	LectureURL    string `json:"lectureUrl"`
	IsPreviewFree bool   `json:"isPreviewFree"`
	LectureOrder  int    `json:"lectureOrder" validate:"gte=1"`
}

// ChapterPayload keeps chapterContent raw: a chapter whose content is not a
// lecture array is stored with zero lectures instead of failing the course,
// so the tolerant decode happens at ingestion in the controller.
type ChapterPayload struct {
	ChapterID    string          `json:"chapterId"`
	Title        string          `json:"chapterTitle" validate:"required"`
	ChapterOrder int             `json:"chapterOrder" validate:"gte=1"`
	Content      json.RawMessage `json:"chapterContent"`
}

// CoursePayload is the nested courseData document educators submit.
type CoursePayload struct {
	Title       string           `json:"courseTitle" validate:"required,min=3"`
	Description string           `json:"courseDescription"`
	Price       float64          `json:"coursePrice" validate:"gte=0"`
	Discount    float64          `json:"discount" validate:"gte=0,lte=100"`
	IsPublished bool             `json:"isPublished"`
	Chapters    []ChapterPayload `json:"courseContent" validate:"dive"`
}

// AddCourse validates the multipart course creation request: a courseData
// JSON form field plus a thumbnail image.
func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.FormValue("courseData"))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseData is required!", nil)
		}

		payload := new(CoursePayload)
		if err := json.Unmarshal([]byte(raw), payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid courseData JSON!", nil)
		}

		if err := validate.Struct(payload); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = fmt.Sprintf("Failed validation: %s", fieldErr.Tag())
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		if err := checkChapterOrders(payload.Chapters); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseContent": err.Error()})
		}

		if _, err := c.FormFile("image"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail not attached!", nil)
		}

		c.Locals("validatedCourse", payload)
		return c.Next()
	}
}

// UpdateCourse validates a course update; the thumbnail is optional here.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		raw := strings.TrimSpace(c.FormValue("courseData"))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseData is required!", nil)
		}

		payload := new(CoursePayload)
		if err := json.Unmarshal([]byte(raw), payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid courseData JSON!", nil)
		}

		if err := validate.Struct(payload); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = fmt.Sprintf("Failed validation: %s", fieldErr.Tag())
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		if err := checkChapterOrders(payload.Chapters); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseContent": err.Error()})
		}

		c.Locals("validatedCourse", payload)
		return c.Next()
	}
}

// checkChapterOrders enforces that chapterOrder values are unique and
// contiguous from 1 after any edit.
func checkChapterOrders(chapters []ChapterPayload) error {
	if len(chapters) == 0 {
		return nil
	}

	orders := make([]int, 0, len(chapters))
	for _, ch := range chapters {
		orders = append(orders, ch.ChapterOrder)
	}
	sort.Ints(orders)

	for i, order := range orders {
		if order != i+1 {
			return fmt.Errorf("chapterOrder values must be unique and contiguous from 1")
		}
	}
	return nil
}

// CheckLectureOrders enforces the same contiguity rule for lectures within a
// chapter. Exported for the controller, which sees lectures only after the
// tolerant chapterContent decode.
func CheckLectureOrders(lectures []LecturePayload) error {
	if len(lectures) == 0 {
		return nil
	}

	orders := make([]int, 0, len(lectures))
	for _, l := range lectures {
		orders = append(orders, l.LectureOrder)
	}
	sort.Ints(orders)

	for i, order := range orders {
		if order != i+1 {
			return fmt.Errorf("lectureOrder values must be unique and contiguous from 1")
		}
	}
	return nil
}
