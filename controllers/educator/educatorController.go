package educatorController

import (
	"encoding/json"
	"errors"
	"lms/database"
	"lms/ledger"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateRoleToEducator upgrades the caller's role claim at the identity
// provider and mirrors it on the local record.
func UpdateRoleToEducator(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	if err := utils.PromoteToEducator(userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Identity provider unavailable, please try again!", nil)
	}

	err := database.Database.Db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", models.RoleEducator).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You can publish a course now!", nil)
}

// AddCourse creates a course from the validated courseData payload and the
// uploaded thumbnail.
func AddCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	payload, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail not attached!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(imageFile, "./public/uploads")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	course := models.Course{
		ID:          uuid.NewString(),
		EducatorID:  educatorID,
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Discount:    payload.Discount,
		Thumbnail:   utils.GetFileURL(savedPath),
		IsPublished: payload.IsPublished,
	}
	course.Chapters = buildChapters(course.ID, payload.Chapters)

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added successfully!", course)
}

// UpdateCourse replaces a course's fields and content. Only the owning
// educator may edit it.
func UpdateCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	courseID := c.Params("id")

	payload, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ? AND educator_id = ?", courseID, educatorID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	thumbnail := course.Thumbnail
	if imageFile, err := c.FormFile("image"); err == nil {
		savedPath, err := utils.SaveUploadedFile(imageFile, "./public/uploads")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		thumbnail = utils.GetFileURL(savedPath)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Replace content wholesale; orders were validated upstream.
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":        payload.Title,
			"description":  payload.Description,
			"price":        payload.Price,
			"discount":     payload.Discount,
			"thumbnail":    thumbnail,
			"is_published": payload.IsPublished,
		}
		if err := tx.Model(&course).Updates(updates).Error; err != nil {
			return err
		}

		chapters := buildChapters(course.ID, payload.Chapters)
		if len(chapters) == 0 {
			return nil
		}
		return tx.Create(&chapters).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", nil)
}

// DeleteCourse removes a course and its content. Only the owning educator
// may delete it. Purchases, enrollment rows and progress rows are left in
// place: purchases are never deleted, and orphaned progress is tolerated.
func DeleteCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ? AND educator_id = ?", courseID, educatorID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or you don't have permission to delete it!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []string
		if err := tx.Model(&models.Chapter{}).
			Where("course_id = ?", course.ID).
			Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		if len(chapterIDs) > 0 {
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Lecture{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := utils.RemoveUploadedFile(course.Thumbnail); err != nil {
		log.Printf("Failed to remove thumbnail for course %s: %v", course.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetEducatorCourses lists the caller's courses.
func GetEducatorCourses(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	var courses []models.Course
	err := database.Database.Db.
		Where("educator_id = ?", educatorID).
		Preload("Chapters.Lectures").
		Preload("Ratings").
		Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// Dashboard returns the educator rollup: earnings over completed purchases,
// course count and the flattened student/course rows.
func Dashboard(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	data, err := ledger.EducatorDashboard(database.Database.Db, educatorID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard data!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard data fetched successfully!", fiber.Map{
		"dashboardData": data,
	})
}

// EnrolledStudents lists completed purchases of the educator's courses with
// student identity and purchase date.
func EnrolledStudents(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if len(courses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
			"enrolledStudents": []fiber.Map{},
		})
	}

	courseIDs := make([]string, 0, len(courses))
	titles := make(map[string]string, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
		titles[course.ID] = course.Title
	}

	var purchases []models.Purchase
	if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
		Order("created_at desc").
		Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	rows := make([]fiber.Map, 0, len(purchases))
	for _, p := range purchases {
		var student models.User
		if err := db.First(&student, "id = ?", p.UserID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
			}
			continue
		}
		rows = append(rows, fiber.Map{
			"student":      student,
			"courseTitle":  titles[p.CourseID],
			"purchaseDate": p.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
		"enrolledStudents": rows,
	})
}

// buildChapters converts payload chapters into model rows. A chapter whose
// content does not decode as a lecture array is kept with zero lectures and
// logged once, rather than failing the course.
func buildChapters(courseID string, payload []courseValidator.ChapterPayload) []models.Chapter {
	chapters := make([]models.Chapter, 0, len(payload))

	for _, ch := range payload {
		chapterID := ch.ChapterID
		if chapterID == "" {
			chapterID = uuid.NewString()
		}

		chapter := models.Chapter{
			ID:           chapterID,
			CourseID:     courseID,
			ChapterOrder: ch.ChapterOrder,
			Title:        ch.Title,
		}

		var lectures []courseValidator.LecturePayload
		if len(ch.Content) > 0 {
			if err := json.Unmarshal(ch.Content, &lectures); err != nil {
				log.Printf("Malformed chapterContent for chapter %q, storing no lectures: %v", ch.Title, err)
				lectures = nil
			}
		}

		if err := courseValidator.CheckLectureOrders(lectures); err != nil {
			log.Printf("Invalid lecture orders for chapter %q, storing no lectures: %v", ch.Title, err)
			lectures = nil
		}

		for _, l := range lectures {
			lectureID := l.LectureID
			if lectureID == "" {
				lectureID = uuid.NewString()
			}
			chapter.Lectures = append(chapter.Lectures, models.Lecture{
				ID:            lectureID,
				ChapterID:     chapterID,
				LectureOrder:  l.LectureOrder,
				Title:         l.Title,
				Duration:      l.Duration,
				LectureURL:    l.LectureURL,
				IsPreviewFree: l.IsPreviewFree,
			})
		}

		chapters = append(chapters, chapter)
	}

	return chapters
}
