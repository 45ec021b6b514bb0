package ledger

import (
	"lms/models"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// ChapterDuration is the total lecture minutes in a chapter.
func ChapterDuration(chapter models.Chapter) int {
	total := 0
	for _, lecture := range chapter.Lectures {
		total += lecture.Duration
	}
	return total
}

// CourseDuration is the total lecture minutes across all chapters.
func CourseDuration(course models.Course) int {
	total := 0
	for _, chapter := range course.Chapters {
		total += ChapterDuration(chapter)
	}
	return total
}

// LectureCount counts lectures across all chapters. A chapter with no
// loadable content contributes 0 instead of failing the whole computation.
func LectureCount(course models.Course) int {
	count := 0
	for _, chapter := range course.Chapters {
		count += len(chapter.Lectures)
	}
	return count
}

// EnrolledStudentRow is one (student, course) membership on the educator
// dashboard. A student enrolled in two of the educator's courses appears
// twice.
type EnrolledStudentRow struct {
	Student     models.User `json:"student"`
	CourseTitle string      `json:"courseTitle"`
	EnrolledAt  time.Time   `json:"enrolledAt"`
}

// DashboardData is the educator dashboard rollup.
type DashboardData struct {
	TotalEarnings float64              `json:"totalEarnings"`
	MonthEarnings float64              `json:"monthEarnings"`
	TotalCourses  int                  `json:"totalCourses"`
	Students      []EnrolledStudentRow `json:"enrolledStudentsData"`
}

// EducatorDashboard aggregates earnings and enrollment rows for an educator.
// Earnings count only COMPLETED purchases of the educator's courses; pending
// and failed purchases are ignored. MonthEarnings is the slice of those
// settled during the current calendar month.
func EducatorDashboard(db *gorm.DB, educatorID string) (*DashboardData, error) {
	var courses []models.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return nil, err
	}

	data := &DashboardData{
		TotalCourses: len(courses),
		Students:     []EnrolledStudentRow{},
	}
	if len(courses) == 0 {
		return data, nil
	}

	courseIDs := make([]string, 0, len(courses))
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
		titles[c.ID] = c.Title
	}

	var purchases []models.Purchase
	if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
		Find(&purchases).Error; err != nil {
		return nil, err
	}

	monthStart := now.BeginningOfMonth()
	for _, p := range purchases {
		data.TotalEarnings += p.Amount
		if !p.UpdatedAt.Before(monthStart) {
			data.MonthEarnings += p.Amount
		}
	}

	var enrollments []models.Enrollment
	if err := db.Where("course_id IN ?", courseIDs).
		Order("created_at asc").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		userIDs = append(userIDs, e.UserID)
	}

	students := make(map[string]models.User)
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			students[u.ID] = u
		}
	}

	for _, e := range enrollments {
		student, ok := students[e.UserID]
		if !ok {
			continue
		}
		data.Students = append(data.Students, EnrolledStudentRow{
			Student:     student,
			CourseTitle: titles[e.CourseID],
			EnrolledAt:  e.CreatedAt,
		})
	}

	return data, nil
}

// StalePendingPurchases lists purchases that have sat in PENDING longer than
// the given age. Used by the reconciliation report; nothing here mutates
// them.
func StalePendingPurchases(db *gorm.DB, olderThan time.Duration) ([]models.Purchase, error) {
	cutoff := time.Now().Add(-olderThan)
	var purchases []models.Purchase
	err := db.Where("status = ? AND created_at < ?", models.PurchasePending, cutoff).
		Order("created_at asc").
		Find(&purchases).Error
	return purchases, err
}
