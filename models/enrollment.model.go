package models

import "time"

// Enrollment is the single source of truth for course membership. A user's
// enrolled courses and a course's enrolled students are both read views over
// this table, so the two sides can never disagree.
type Enrollment struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	UserID   string `json:"userId" gorm:"uniqueIndex:idx_user_course_enrollment;index;not null"`
	CourseID string `json:"courseId" gorm:"uniqueIndex:idx_user_course_enrollment;index;not null"`

	CreatedAt time.Time `json:"enrolledAt"`
}
