package courseController

import (
	"lms/database"
	"lms/ledger"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists published courses with their content and ratings.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	err := database.Database.Db.
		Where("is_published = ?", true).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_order asc")
		}).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("lecture_order asc")
		}).
		Preload("Ratings").
		Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseByID returns one course with derived aggregates. Lecture URLs are
// stripped for non-preview lectures; only enrolled viewers may need them and
// they fetch content through the enrollments endpoint.
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	err := database.Database.Db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_order asc")
		}).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("lecture_order asc")
		}).
		Preload("Ratings").
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	for ci := range course.Chapters {
		for li := range course.Chapters[ci].Lectures {
			if !course.Chapters[ci].Lectures[li].IsPreviewFree {
				course.Chapters[ci].Lectures[li].LectureURL = ""
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":        course,
		"averageRating": ledger.AverageRating(course.Ratings),
		"totalDuration": ledger.CourseDuration(course),
		"lectureCount":  ledger.LectureCount(course),
	})
}
