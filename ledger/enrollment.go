package ledger

import (
	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Enroll links a user to a course. The enrollment row is the single source of
// truth for both the user's course list and the course's student set, and the
// ON CONFLICT guard makes concurrent duplicate calls converge on one row.
// Returns true when a new enrollment was created, false when the user was
// already enrolled.
func Enroll(db *gorm.DB, userID, courseID string) (bool, error) {
	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&enrollment)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// IsEnrolled reports whether the user holds an enrollment for the course.
func IsEnrolled(db *gorm.DB, userID, courseID string) (bool, error) {
	var count int64
	err := db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnrolledCourses returns the courses a user is enrolled in, oldest
// enrollment first, with their content preloaded.
func EnrolledCourses(db *gorm.DB, userID string) ([]models.Course, error) {
	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	if len(enrollments) == 0 {
		return []models.Course{}, nil
	}

	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	var courses []models.Course
	if err := db.Where("id IN ?", courseIDs).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_order asc")
		}).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("lecture_order asc")
		}).
		Preload("Ratings").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	// Preserve enrollment order
	byID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	ordered := make([]models.Course, 0, len(courses))
	for _, id := range courseIDs {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}

	return ordered, nil
}

// EnrolledStudents returns the users enrolled in a course.
func EnrolledStudents(db *gorm.DB, courseID string) ([]models.User, error) {
	var users []models.User
	err := db.
		Joins("JOIN enrollments ON enrollments.user_id = users.id").
		Where("enrollments.course_id = ?", courseID).
		Order("enrollments.created_at asc").
		Find(&users).Error
	return users, err
}
